package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/config"
)

// fastResolverConfig keeps retry schedules in the millisecond range so the
// full backoff path runs in tests.
func fastResolverConfig() config.ResolverConfig {
	return config.ResolverConfig{
		MaxAttempts:       4,
		InitialBackoff:    2 * time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        10 * time.Millisecond,
		AuthRetries:       3,
		AuthRetryDelay:    time.Millisecond,
		CacheTTL:          time.Minute,
	}
}

func newActiveMembership(t *testing.T, userID, tenantID uuid.UUID) *identity.Membership {
	t.Helper()
	m, err := identity.NewMembership(userID, tenantID, identity.MembershipRoleUser)
	require.NoError(t, err)
	m.ClearDomainEvents()
	return m
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	tenantID := uuid.New()

	t.Run("resolves from active membership and caches", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		repo.On("FindActiveByUser", mock.Anything, userID).
			Return(newActiveMembership(t, userID, tenantID), nil).Once()

		got, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)

		cached, ok, _ := cache.Get(ctx, userID)
		assert.True(t, ok)
		assert.Equal(t, tenantID, cached)
	})

	t.Run("cache hit skips the lookup entirely", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		cache.entries[userID] = tenantID
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		got, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
		repo.AssertNotCalled(t, "FindActiveByUser", mock.Anything, mock.Anything)
	})

	t.Run("missing membership is retried with backoff until it appears", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		var retries []int
		resolver.WithRetryObserver(func(attempt int, err error) {
			retries = append(retries, attempt)
			assert.True(t, shared.IsNotFound(err))
		})

		// Membership shows up on the third attempt, as if onboarding just
		// finished provisioning it.
		repo.On("FindActiveByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound).Twice()
		repo.On("FindActiveByUser", mock.Anything, userID).
			Return(newActiveMembership(t, userID, tenantID), nil).Once()

		got, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
		assert.Equal(t, []int{1, 2}, retries)
	})

	t.Run("gives up with NO_TENANT after the attempt budget", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		cfg := fastResolverConfig()
		resolver := NewTenantResolver(repo, cache, cfg, zaptest.NewLogger(t))

		repo.On("FindActiveByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		attempts := 0
		resolver.WithRetryObserver(func(int, error) { attempts++ })

		_, err := resolver.Resolve(ctx, userID)
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.ErrNoTenant.Code, de.Code)
		assert.Equal(t, cfg.MaxAttempts, attempts)
		assert.Zero(t, cache.setCallCount)
	})

	t.Run("transient auth errors get fixed retries within one attempt", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		repo.On("FindActiveByUser", mock.Anything, userID).Return(nil, shared.ErrTransientAuth).Twice()
		repo.On("FindActiveByUser", mock.Anything, userID).
			Return(newActiveMembership(t, userID, tenantID), nil).Once()

		attempts := 0
		resolver.WithRetryObserver(func(int, error) { attempts++ })

		got, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
		// The fixed retries resolved it inside the first backoff attempt.
		assert.Zero(t, attempts)
	})

	t.Run("persistent transient auth fails permanently", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		repo.On("FindActiveByUser", mock.Anything, userID).Return(nil, shared.ErrTransientAuth)

		_, err := resolver.Resolve(ctx, userID)
		require.Error(t, err)
		de, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, shared.ErrTransientAuth.Code, de.Code)
		// 1 initial call + AuthRetries fixed retries, no backoff loop.
		repo.AssertNumberOfCalls(t, "FindActiveByUser", 4)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		cfg := fastResolverConfig()
		cfg.InitialBackoff = 5 * time.Second // long enough that cancel wins
		resolver := NewTenantResolver(repo, cache, cfg, zaptest.NewLogger(t))

		cancelCtx, cancel := context.WithCancel(ctx)
		repo.On("FindActiveByUser", mock.Anything, userID).Return(nil, shared.ErrNotFound)

		done := make(chan error, 1)
		go func() {
			_, err := resolver.Resolve(cancelCtx, userID)
			done <- err
		}()

		time.Sleep(20 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("resolver did not return after context cancellation")
		}
	})

	t.Run("cache write failure does not fail resolution", func(t *testing.T) {
		repo := new(MockMembershipRepo)
		cache := newFakeTenantCache()
		cache.setErr = assert.AnError
		resolver := NewTenantResolver(repo, cache, fastResolverConfig(), zaptest.NewLogger(t))

		repo.On("FindActiveByUser", mock.Anything, userID).
			Return(newActiveMembership(t, userID, tenantID), nil).Once()

		got, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, got)
	})
}
