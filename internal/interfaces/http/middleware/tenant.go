package middleware

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/logger"
	"github.com/finflow/backend/internal/interfaces/http/dto"
)

// TenantIDKey is the gin context key for the resolved tenant id
const TenantIDKey = "tenant_id"

// TenantResolver resolves the active tenant for an authenticated user.
// Implemented by the identity application layer; retries and caching are
// its concern, not the middleware's.
type TenantResolver interface {
	Resolve(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

// TenantContextMiddleware resolves the tenant for every authenticated
// request and stores it in the request context. It must run after
// JWTAuthMiddleware. There is no header or token fallback: the membership
// table is the only source of tenant identity.
func TenantContextMiddleware(resolver TenantResolver, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserUUID(c)
		if !ok {
			// Unauthenticated path (skip list); nothing to resolve.
			c.Next()
			return
		}

		tenantID, err := resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			abortTenantError(c, log, userID, err)
			return
		}

		c.Set(TenantIDKey, tenantID)

		ctx := c.Request.Context()
		ctx, _ = logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortTenantError(c *gin.Context, log *zap.Logger, userID uuid.UUID, err error) {
	code := dto.ErrCodeInternal
	message := "Tenant resolution failed"

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code = domainErr.Code
		message = domainErr.Message
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		code = dto.ErrCodeTransientAuth
		message = "Tenant resolution timed out"
	}

	if log != nil {
		log.Warn("tenant resolution failed",
			zap.String("user_id", userID.String()),
			zap.String("code", code),
			zap.Error(err))
	}

	c.AbortWithStatusJSON(dto.GetHTTPStatus(code),
		dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}

// GetTenantUUID retrieves the resolved tenant id from gin.Context.
// The second return is false when no tenant context was established.
func GetTenantUUID(c *gin.Context) (uuid.UUID, bool) {
	if v, exists := c.Get(TenantIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
