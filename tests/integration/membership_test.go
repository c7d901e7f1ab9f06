package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	appidentity "github.com/finflow/backend/internal/application/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/cache"
	"github.com/finflow/backend/internal/infrastructure/config"
	"github.com/finflow/backend/internal/infrastructure/persistence"
)

func newMembershipService(t *testing.T, tdb *TestDB, invalidator appidentity.CacheInvalidator) *appidentity.MembershipService {
	t.Helper()
	return appidentity.NewMembershipService(
		persistence.NewGormMembershipRepository(tdb.DB),
		persistence.NewGormTenantRepository(tdb.DB),
		persistence.NewGormUserRepository(tdb.DB),
		invalidator,
		persistence.NewGormAuditLogRepository(tdb.DB),
		zaptest.NewLogger(t),
	)
}

// fastResolverConfig keeps retries short so failure paths finish quickly
func fastResolverConfig() config.ResolverConfig {
	return config.ResolverConfig{
		MaxAttempts:       3,
		InitialBackoff:    10 * time.Millisecond,
		BackoffMultiplier: 2.0,
		MaxBackoff:        50 * time.Millisecond,
		AuthRetries:       2,
		AuthRetryDelay:    5 * time.Millisecond,
		CacheTTL:          time.Minute,
	}
}

func TestAssignDisplacesPreviousMembership(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantA := seedTenant(t, tdb)
	tenantB := seedTenant(t, tdb)
	userID := seedUser(t, tdb)

	tenantCache := cache.NewInMemoryTenantCache()
	svc := newMembershipService(t, tdb, tenantCache)

	first, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
		UserID: userID, TenantID: tenantA, Role: "finance",
	})
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.Equal(t, tenantA, first.TenantID)

	second, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
		UserID: userID, TenantID: tenantB, Role: "finance",
	})
	require.NoError(t, err)
	assert.Equal(t, tenantB, second.TenantID)

	// The database-level invariant: never more than one active row.
	membershipRepo := persistence.NewGormMembershipRepository(tdb.DB)
	count, err := membershipRepo.CountActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err := membershipRepo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, tenantB, active.TenantID)
}

func TestConcurrentAssignsKeepSingleActiveRow(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantA := seedTenant(t, tdb)
	tenantB := seedTenant(t, tdb)
	userID := seedUser(t, tdb)

	svc := newMembershipService(t, tdb, cache.NewInMemoryTenantCache())

	// Two simultaneous assignments for the same user. The upsert serializes
	// them on the active row's lock, so both succeed and exactly one row
	// remains active.
	tenants := []uuid.UUID{tenantA, tenantB}
	errs := make([]error, len(tenants))
	var wg sync.WaitGroup
	for i := range tenants {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Assign(ctx, appidentity.AssignMembershipRequest{
				UserID: userID, TenantID: tenants[i], Role: "finance",
			})
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	membershipRepo := persistence.NewGormMembershipRepository(tdb.DB)
	count, err := membershipRepo.CountActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	active, err := membershipRepo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Contains(t, tenants, active.TenantID)
}

func TestRemoveRequiresMatchingTenant(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantA := seedTenant(t, tdb)
	tenantB := seedTenant(t, tdb)
	userID := seedUser(t, tdb)

	svc := newMembershipService(t, tdb, cache.NewInMemoryTenantCache())
	_, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
		UserID: userID, TenantID: tenantA, Role: "finance",
	})
	require.NoError(t, err)

	// Naming the wrong tenant must not touch the membership in tenant A.
	err = svc.Remove(ctx, userID, tenantB)
	require.Error(t, err)
	assert.True(t, shared.IsNotFound(err))

	membershipRepo := persistence.NewGormMembershipRepository(tdb.DB)
	active, err := membershipRepo.FindActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, tenantA, active.TenantID)

	require.NoError(t, svc.Remove(ctx, userID, tenantA))
	count, err := membershipRepo.CountActiveByUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPartialUniqueIndexBlocksSecondActiveRow(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantA := seedTenant(t, tdb)
	tenantB := seedTenant(t, tdb)
	userID := seedUser(t, tdb)

	svc := newMembershipService(t, tdb, cache.NewInMemoryTenantCache())
	_, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
		UserID: userID, TenantID: tenantA, Role: "user",
	})
	require.NoError(t, err)

	// Bypass the service: a raw second active row must violate the
	// partial unique index.
	err = tdb.DB.Exec(`
		INSERT INTO tenant_memberships (id, created_at, updated_at, version, user_id, tenant_id, role, active)
		VALUES (gen_random_uuid(), now(), now(), 1, ?, ?, 'user', TRUE)
	`, userID, tenantB).Error
	require.Error(t, err)
}

func TestTenantResolution(t *testing.T) {
	tdb := NewTestDB(t)
	ctx := context.Background()

	tenantID := seedTenant(t, tdb)
	userID := seedUser(t, tdb)

	tenantCache := cache.NewInMemoryTenantCache()
	membershipRepo := persistence.NewGormMembershipRepository(tdb.DB)
	resolver := appidentity.NewTenantResolver(membershipRepo, tenantCache, fastResolverConfig(), zaptest.NewLogger(t))
	svc := newMembershipService(t, tdb, resolver)

	t.Run("fails with NO_TENANT when user has no membership", func(t *testing.T) {
		stray := seedUser(t, tdb)
		_, err := resolver.Resolve(ctx, stray)
		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrNoTenant)
	})

	t.Run("resolves the active membership", func(t *testing.T) {
		_, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
			UserID: userID, TenantID: tenantID, Role: "admin",
		})
		require.NoError(t, err)

		resolved, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, resolved)
	})

	t.Run("reflects a reassignment after cache invalidation", func(t *testing.T) {
		otherTenant := seedTenant(t, tdb)
		_, err := svc.Assign(ctx, appidentity.AssignMembershipRequest{
			UserID: userID, TenantID: otherTenant, Role: "admin",
		})
		require.NoError(t, err)

		resolved, err := resolver.Resolve(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, otherTenant, resolved)
	})
}
