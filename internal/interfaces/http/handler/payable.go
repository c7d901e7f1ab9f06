package handler

import (
	"github.com/gin-gonic/gin"

	appfinance "github.com/finflow/backend/internal/application/finance"
)

// PayableHandler serves account payable CRUD and settlement
type PayableHandler struct {
	BaseHandler
	payables   *appfinance.PayableService
	settlement *appfinance.SettlementService
}

// NewPayableHandler creates a new PayableHandler
func NewPayableHandler(payables *appfinance.PayableService, settlement *appfinance.SettlementService) *PayableHandler {
	return &PayableHandler{payables: payables, settlement: settlement}
}

// Create handles POST /api/v1/payables
func (h *PayableHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreatePayableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payables.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/payables/:id
func (h *PayableHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.payables.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/payables
func (h *PayableHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter appfinance.ObligationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	resp, total, err := h.payables.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, total, filter.Page, filter.PageSize)
}

// Pay handles POST /api/v1/payables/:id/pay. Settlement is atomic and
// idempotent: repeating the call returns the original ledger transaction.
func (h *PayableHandler) Pay(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appfinance.SettleRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.settlement.SettlePayable(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /api/v1/payables/:id/cancel
func (h *PayableHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	var req appfinance.CancelRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.payables.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
