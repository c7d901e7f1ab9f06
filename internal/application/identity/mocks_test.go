package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
)

type MockMembershipRepo struct {
	mock.Mock
}

func (m *MockMembershipRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepo) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepo) FindByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*identity.Membership, error) {
	args := m.Called(ctx, userID, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepo) FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]identity.Membership, error) {
	args := m.Called(ctx, tenantID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Membership), args.Error(1)
}

func (m *MockMembershipRepo) Save(ctx context.Context, membership *identity.Membership) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockMembershipRepo) AssignActive(ctx context.Context, membership *identity.Membership) (*identity.Membership, error) {
	args := m.Called(ctx, membership)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// Allow tests to echo the membership being assigned.
	if fn, ok := args.Get(0).(func(*identity.Membership) *identity.Membership); ok {
		return fn(membership), args.Error(1)
	}
	return args.Get(0).(*identity.Membership), args.Error(1)
}

func (m *MockMembershipRepo) CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockTenantRepo struct {
	mock.Mock
}

func (m *MockTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepo) FindByContactEmail(ctx context.Context, email string) (*identity.Tenant, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Tenant), args.Error(1)
}

func (m *MockTenantRepo) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepo) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	args := m.Called(ctx, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.Tenant), args.Error(1)
}

func (m *MockTenantRepo) Save(ctx context.Context, tenant *identity.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepo) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepo) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepo) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// fakeTenantCache is an in-memory TenantCache that records invalidations.
type fakeTenantCache struct {
	mu           sync.Mutex
	entries      map[uuid.UUID]uuid.UUID
	invalidated  []uuid.UUID
	getErr       error
	setErr       error
	setCallCount int
}

func newFakeTenantCache() *fakeTenantCache {
	return &fakeTenantCache{entries: make(map[uuid.UUID]uuid.UUID)}
}

func (c *fakeTenantCache) Get(_ context.Context, userID uuid.UUID) (uuid.UUID, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return uuid.Nil, false, c.getErr
	}
	id, ok := c.entries[userID]
	return id, ok, nil
}

func (c *fakeTenantCache) Set(_ context.Context, userID, tenantID uuid.UUID, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCallCount++
	if c.setErr != nil {
		return c.setErr
	}
	c.entries[userID] = tenantID
	return nil
}

func (c *fakeTenantCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

// fakeAuditRecorder collects audit entries in memory.
type fakeAuditRecorder struct {
	mu      sync.Mutex
	entries []AuditEntry
}

func (r *fakeAuditRecorder) Record(_ context.Context, entry AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

func (r *fakeAuditRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}
