package handler

import (
	"github.com/gin-gonic/gin"

	appfinance "github.com/finflow/backend/internal/application/finance"
)

// ReceivableHandler serves account receivable CRUD and settlement
type ReceivableHandler struct {
	BaseHandler
	receivables *appfinance.ReceivableService
	settlement  *appfinance.SettlementService
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(receivables *appfinance.ReceivableService, settlement *appfinance.SettlementService) *ReceivableHandler {
	return &ReceivableHandler{receivables: receivables, settlement: settlement}
}

// Create handles POST /api/v1/receivables
func (h *ReceivableHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req appfinance.CreateReceivableRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.receivables.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/receivables/:id
func (h *ReceivableHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.receivables.Get(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/receivables
func (h *ReceivableHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var filter appfinance.ObligationListFilter
	if !h.bindQuery(c, &filter) {
		return
	}

	resp, total, err := h.receivables.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, total, filter.Page, filter.PageSize)
}

// Receive handles POST /api/v1/receivables/:id/receive
func (h *ReceivableHandler) Receive(c *gin.Context) {
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

	resp, err := h.settlement.SettleReceivable(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Cancel handles POST /api/v1/receivables/:id/cancel
func (h *ReceivableHandler) Cancel(c *gin.Context) {
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

	resp, err := h.receivables.Cancel(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
