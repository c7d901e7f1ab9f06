// Package handler contains the gin HTTP handlers.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/interfaces/http/dto"
	"github.com/finflow/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides shared response and binding helpers
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// HandleError maps a domain error to its HTTP status; anything else is a 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponseWithRequestID(domainErr.Code, domainErr.Message, requestID))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponseWithRequestID(dto.ErrCodeInternal, "An unexpected error occurred", requestID))
}

// bindJSON binds the request body and responds with a validation error on
// failure. Returns false when the request was rejected.
func (h *BaseHandler) bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest,
			middleware.FormatValidationErrors(err, middleware.GetRequestID(c)))
		return false
	}
	return true
}

// bindQuery binds query parameters, rejecting the request on failure
func (h *BaseHandler) bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest,
			middleware.FormatValidationErrors(err, middleware.GetRequestID(c)))
		return false
	}
	return true
}

// uuidParam parses a UUID path parameter, rejecting the request on failure
func (h *BaseHandler) uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeBadRequest, name+" must be a valid UUID", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// tenantID returns the tenant established by the tenant middleware.
// Its absence on a protected route is a programming error in the route
// table, answered with 401 rather than a panic.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized, "Tenant context missing", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}

// listFilter binds common pagination query params into a shared.Filter
func (h *BaseHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	var req dto.ListRequest
	if !h.bindQuery(c, &req) {
		return shared.Filter{}, false
	}
	req.Normalize()
	return shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}, true
}

// userID returns the authenticated user established by the JWT middleware
func (h *BaseHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetUserUUID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeUnauthorized, "Authentication required", middleware.GetRequestID(c)))
		return uuid.Nil, false
	}
	return id, true
}
