package persistence

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

func setupMembershipTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.MembershipModel{}))

	// Same partial unique index the postgres migration creates: at most one
	// active membership per user, enforced by the database.
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX idx_memberships_one_active ON tenant_memberships (user_id) WHERE active`,
	).Error)

	return db
}

func newMembership(t *testing.T, userID, tenantID uuid.UUID) *identity.Membership {
	m, err := identity.NewMembership(userID, tenantID, identity.MembershipRoleFinance)
	require.NoError(t, err)
	return m
}

func TestGormMembershipRepository_FindActiveByUser(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewGormMembershipRepository(db)
	ctx := context.Background()

	t.Run("returns not found when user has no membership", func(t *testing.T) {
		_, err := repo.FindActiveByUser(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("returns the active membership", func(t *testing.T) {
		userID, tenantID := uuid.New(), uuid.New()
		m := newMembership(t, userID, tenantID)
		require.NoError(t, repo.Save(ctx, m))

		found, err := repo.FindActiveByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, tenantID, found.TenantID)
		assert.True(t, found.Active)
	})

	t.Run("ignores deactivated memberships", func(t *testing.T) {
		userID := uuid.New()
		m := newMembership(t, userID, uuid.New())
		m.Deactivate()
		require.NoError(t, repo.Save(ctx, m))

		_, err := repo.FindActiveByUser(ctx, userID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormMembershipRepository_AssignActive(t *testing.T) {
	ctx := context.Background()

	t.Run("first assignment creates an active membership", func(t *testing.T) {
		db := setupMembershipTestDB(t)
		repo := NewGormMembershipRepository(db)
		userID, tenantID := uuid.New(), uuid.New()

		assigned, err := repo.AssignActive(ctx, newMembership(t, userID, tenantID))
		require.NoError(t, err)
		assert.Equal(t, tenantID, assigned.TenantID)

		count, err := repo.CountActiveByUser(ctx, userID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)
	})

	t.Run("reassignment deactivates the previous membership", func(t *testing.T) {
		db := setupMembershipTestDB(t)
		repo := NewGormMembershipRepository(db)
		userID := uuid.New()
		firstTenant, secondTenant := uuid.New(), uuid.New()

		first, err := repo.AssignActive(ctx, newMembership(t, userID, firstTenant))
		require.NoError(t, err)

		assigned, err := repo.AssignActive(ctx, newMembership(t, userID, secondTenant))
		require.NoError(t, err)
		assert.Equal(t, secondTenant, assigned.TenantID)

		// Single-active invariant holds
		count, err := repo.CountActiveByUser(ctx, userID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, count)

		// The old membership survives, deactivated
		old, err := repo.FindByID(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, old.Active)
		assert.NotNil(t, old.DeactivatedAt)
		assert.Equal(t, firstTenant, old.TenantID)
	})

	t.Run("resolution sees the new tenant after reassignment", func(t *testing.T) {
		db := setupMembershipTestDB(t)
		repo := NewGormMembershipRepository(db)
		userID := uuid.New()
		secondTenant := uuid.New()

		_, err := repo.AssignActive(ctx, newMembership(t, userID, uuid.New()))
		require.NoError(t, err)
		_, err = repo.AssignActive(ctx, newMembership(t, userID, secondTenant))
		require.NoError(t, err)

		active, err := repo.FindActiveByUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, secondTenant, active.TenantID)
	})
}

func TestGormMembershipRepository_FindByTenant(t *testing.T) {
	db := setupMembershipTestDB(t)
	repo := NewGormMembershipRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	active := newMembership(t, uuid.New(), tenantID)
	require.NoError(t, repo.Save(ctx, active))

	inactive := newMembership(t, uuid.New(), tenantID)
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	all, err := repo.FindByTenant(ctx, tenantID, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	activeOnly, err := repo.FindByTenant(ctx, tenantID, true)
	require.NoError(t, err)
	assert.Len(t, activeOnly, 1)
	assert.Equal(t, active.UserID, activeOnly[0].UserID)
}

func TestIsTransientLookupError(t *testing.T) {
	assert.False(t, isTransientLookupError(nil))
	assert.False(t, isTransientLookupError(assert.AnError))
	assert.False(t, isTransientLookupError(gorm.ErrRecordNotFound))

	assert.True(t, isTransientLookupError(driver.ErrBadConn))
	assert.True(t, isTransientLookupError(&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}))
	assert.True(t, isTransientLookupError(errors.New("failed to connect: SQLSTATE 08006")))
	assert.True(t, isTransientLookupError(errors.New("password authentication failed (SQLSTATE 28P01)")))
	assert.True(t, isTransientLookupError(errors.New("could not serialize access (SQLSTATE 40001)")))

	// Real lookup outcomes stay as-is.
	assert.False(t, isTransientLookupError(errors.New("duplicate key value violates unique constraint (SQLSTATE 23505)")))
}

func TestFindActiveByUserMapsConnectionErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewGormMembershipRepository(db)

	mock.ExpectQuery(`SELECT .* FROM "tenant_memberships"`).
		WillReturnError(errors.New("failed to connect to server: SQLSTATE 08006"))

	_, err := repo.FindActiveByUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrTransientAuth)
}
