package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/finflow/backend/internal/application/identity"
)

// AuthHandler serves signup, login and the current-user endpoint
type AuthHandler struct {
	BaseHandler
	auth *appidentity.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(auth *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req appidentity.SignupRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.auth.Signup(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if !h.bindJSON(c, &req) {
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	resp, err := h.auth.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
