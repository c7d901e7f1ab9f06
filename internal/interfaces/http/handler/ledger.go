package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appfinance "github.com/finflow/backend/internal/application/finance"
	"github.com/finflow/backend/internal/interfaces/http/dto"
)

// LedgerHandler serves the append-only ledger and the cash-flow report
type LedgerHandler struct {
	BaseHandler
	ledger *appfinance.LedgerService
}

// NewLedgerHandler creates a new LedgerHandler
func NewLedgerHandler(ledger *appfinance.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Record handles POST /api/v1/ledger/transactions for free-standing
// entries that are not tied to an obligation.
func (h *LedgerHandler) Record(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreateLedgerEntryRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.ledger.RecordEntry(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/ledger/transactions/:id
func (h *LedgerHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.ledger.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/ledger/transactions
func (h *LedgerHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	resp, err := h.ledger.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// CashFlow handles GET /api/v1/reports/cashflow. Without an explicit
// range it covers the last 12 months.
func (h *LedgerHandler) CashFlow(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var rng dto.DateRangeRequest
	if !h.bindQuery(c, &rng) {
		return
	}

	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)
	if rng.From != nil {
		from = *rng.From
	}
	if rng.To != nil {
		to = *rng.To
	}

	resp, err := h.ledger.MonthlyCashFlow(c.Request.Context(), tenantID, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
