package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appfinance "github.com/finflow/backend/internal/application/finance"
)

// BankAccountHandler serves bank account CRUD
type BankAccountHandler struct {
	BaseHandler
	accounts *appfinance.BankAccountService
	ledger   *appfinance.LedgerService
}

// NewBankAccountHandler creates a new BankAccountHandler
func NewBankAccountHandler(accounts *appfinance.BankAccountService, ledger *appfinance.LedgerService) *BankAccountHandler {
	return &BankAccountHandler{accounts: accounts, ledger: ledger}
}

// Create handles POST /api/v1/bank-accounts
func (h *BankAccountHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreateBankAccountRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.accounts.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/bank-accounts/:id
func (h *BankAccountHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.accounts.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/bank-accounts
func (h *BankAccountHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))

	resp, err := h.accounts.List(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Deactivate handles POST /api/v1/bank-accounts/:id/deactivate
func (h *BankAccountHandler) Deactivate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.accounts.Deactivate(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Transactions handles GET /api/v1/bank-accounts/:id/transactions
func (h *BankAccountHandler) Transactions(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	resp, err := h.ledger.ListByBankAccount(c.Request.Context(), tenantID, id, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
