package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/finflow/backend/internal/application/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/interfaces/http/dto"
)

// TenantHandler serves tenant onboarding and lifecycle operations.
// These are operator endpoints; they work on explicit tenant ids rather
// than the caller's resolved tenant context.
type TenantHandler struct {
	BaseHandler
	tenants *appidentity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenants *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{tenants: tenants}
}

// Onboard handles POST /api/v1/tenants. It provisions the tenant, its
// admin user, the active membership and a baseline cash account in one
// transaction.
func (h *TenantHandler) Onboard(c *gin.Context) {
	var req appidentity.OnboardTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.tenants.Onboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get handles GET /api/v1/tenants/:id
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := h.tenants.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List handles GET /api/v1/tenants
func (h *TenantHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	req.Normalize()

	resp, total, err := h.tenants.List(c.Request.Context(), shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, resp, total, req.Page, req.PageSize)
}

// Activate handles POST /api/v1/tenants/:id/activate
func (h *TenantHandler) Activate(c *gin.Context) {
	h.transition(c, h.tenants.Activate)
}

// Suspend handles POST /api/v1/tenants/:id/suspend
func (h *TenantHandler) Suspend(c *gin.Context) {
	h.transition(c, h.tenants.Suspend)
}

// Block handles POST /api/v1/tenants/:id/block
func (h *TenantHandler) Block(c *gin.Context) {
	h.transition(c, h.tenants.Block)
}

func (h *TenantHandler) transition(c *gin.Context, fn func(context.Context, uuid.UUID) (*appidentity.TenantResponse, error)) {
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}

	resp, err := fn(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
