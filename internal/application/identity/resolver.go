package identity

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/cache"
	"github.com/finflow/backend/internal/infrastructure/config"
	"github.com/finflow/backend/internal/infrastructure/telemetry"
)

// RetryObserver is notified on every failed resolution attempt before the
// resolver backs off. Used by tests and metrics; may be nil.
type RetryObserver func(attempt int, err error)

// TenantResolver resolves the tenant a user operates in. The token carries
// no tenant claim: the active membership row is the single source of truth,
// so a stale token can never pin a user to a previous tenant.
//
// A missing membership is treated as provisioning lag, not an error: the
// resolver retries with exponential backoff (about 25 seconds total under
// the default settings) before concluding the user genuinely has no tenant.
// Transient auth failures on the privileged lookup get a short fixed-delay
// retry instead, since they clear quickly or not at all.
type TenantResolver struct {
	memberships identity.MembershipRepository
	cache       cache.TenantCache
	cfg         config.ResolverConfig
	logger      *zap.Logger
	onRetry     RetryObserver
}

// NewTenantResolver creates a new TenantResolver
func NewTenantResolver(
	memberships identity.MembershipRepository,
	tenantCache cache.TenantCache,
	cfg config.ResolverConfig,
	logger *zap.Logger,
) *TenantResolver {
	return &TenantResolver{
		memberships: memberships,
		cache:       tenantCache,
		cfg:         cfg,
		logger:      logger,
	}
}

// WithRetryObserver registers a callback invoked on each failed attempt.
func (r *TenantResolver) WithRetryObserver(fn RetryObserver) *TenantResolver {
	r.onRetry = fn
	return r
}

// Resolve returns the tenant the user is actively assigned to.
//
// Outcomes:
//   - tenant ID on success (cached for subsequent calls)
//   - shared.ErrNoTenant once every backoff attempt saw no membership
//   - shared.ErrTransientAuth if the privileged lookup kept failing after
//     the fixed retries
//   - ctx.Err() if the caller gave up while the resolver was waiting
func (r *TenantResolver) Resolve(ctx context.Context, userID uuid.UUID) (uuid.UUID, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "TenantResolver", "Resolve")
	defer span.End()
	telemetry.SetAttributes(ctx, map[string]any{telemetry.SpanAttrUserID: userID})

	if tenantID, ok, err := r.cache.Get(ctx, userID); err == nil && ok {
		telemetry.SetAttributes(ctx, map[string]any{telemetry.SpanAttrResolverHit: true})
		telemetry.SetOK(ctx)
		return tenantID, nil
	}
	telemetry.SetAttributes(ctx, map[string]any{telemetry.SpanAttrResolverHit: false})

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = r.cfg.InitialBackoff
	bo.Multiplier = r.cfg.BackoffMultiplier
	bo.MaxInterval = r.cfg.MaxBackoff
	bo.MaxElapsedTime = 0 // bounded by attempt count, not wall time
	bo.RandomizationFactor = 0

	var tenantID uuid.UUID
	attempt := 0
	operation := func() error {
		attempt++
		membership, err := r.lookupWithAuthRetry(ctx, userID)
		if err == nil {
			tenantID = membership.TenantID
			return nil
		}
		if r.onRetry != nil {
			r.onRetry(attempt, err)
		}
		if shared.IsNotFound(err) {
			r.logger.Debug("no active membership yet, backing off",
				zap.String("user_id", userID.String()),
				zap.Int("attempt", attempt))
			return shared.ErrNoMappingYet
		}
		return backoff.Permanent(err)
	}

	maxRetries := uint64(0)
	if r.cfg.MaxAttempts > 1 {
		maxRetries = uint64(r.cfg.MaxAttempts - 1)
	}
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, maxRetries), ctx))
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			telemetry.RecordError(ctx, err)
			return uuid.Nil, err
		}
		var de *shared.DomainError
		if errors.As(err, &de) && de.Code == shared.ErrNoMappingYet.Code {
			// Exhausted every attempt: the membership is not coming.
			r.logger.Warn("tenant resolution gave up",
				zap.String("user_id", userID.String()),
				zap.Int("attempts", attempt))
			telemetry.RecordError(ctx, shared.ErrNoTenant)
			return uuid.Nil, shared.ErrNoTenant
		}
		telemetry.RecordError(ctx, err)
		return uuid.Nil, err
	}

	if err := r.cache.Set(ctx, userID, tenantID, r.cfg.CacheTTL); err != nil {
		r.logger.Warn("failed to cache resolved tenant", zap.Error(err))
	}

	telemetry.SetAttributes(ctx, map[string]any{
		telemetry.SpanAttrTenantID: tenantID,
		telemetry.SpanAttrAttempt:  attempt,
	})
	telemetry.SetOK(ctx)
	return tenantID, nil
}

// Invalidate drops the cached resolution for a user. Called whenever a
// membership is assigned or removed.
func (r *TenantResolver) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return r.cache.Invalidate(ctx, userID)
}

// lookupWithAuthRetry performs the privileged membership lookup, retrying a
// fixed number of times with a fixed delay when the failure is a transient
// auth error. Any other error is returned as-is.
func (r *TenantResolver) lookupWithAuthRetry(ctx context.Context, userID uuid.UUID) (*identity.Membership, error) {
	var lastErr error
	for i := 0; i <= r.cfg.AuthRetries; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.cfg.AuthRetryDelay):
			}
		}
		membership, err := r.memberships.FindActiveByUser(ctx, userID)
		if err == nil {
			return membership, nil
		}
		lastErr = err
		if !isTransientAuth(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func isTransientAuth(err error) bool {
	var de *shared.DomainError
	return errors.As(err, &de) && de.Code == shared.ErrTransientAuth.Code
}
