package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appidentity "github.com/finflow/backend/internal/application/identity"
)

// MembershipHandler serves membership assignment and removal. Assigning a
// membership atomically deactivates any previous active one, so a user is
// always in at most one tenant.
type MembershipHandler struct {
	BaseHandler
	memberships *appidentity.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(memberships *appidentity.MembershipService) *MembershipHandler {
	return &MembershipHandler{memberships: memberships}
}

// Assign handles POST /api/v1/memberships
func (h *MembershipHandler) Assign(c *gin.Context) {
	var req appidentity.AssignMembershipRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.memberships.Assign(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Remove handles DELETE /api/v1/tenants/:id/memberships/:userId. The tenant
// in the path must match the user's active membership.
func (h *MembershipHandler) Remove(c *gin.Context) {
	tenantID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	userID, ok := h.uuidParam(c, "userId")
	if !ok {
		return
	}

	if err := h.memberships.Remove(c.Request.Context(), userID, tenantID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListByTenant handles GET /api/v1/tenants/:id/memberships
func (h *MembershipHandler) ListByTenant(c *gin.Context) {
	tenantID, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "true"))

	resp, err := h.memberships.ListByTenant(c.Request.Context(), tenantID, activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Active handles GET /api/v1/memberships/active, returning the caller's
// active membership.
func (h *MembershipHandler) Active(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.memberships.GetActive(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
