package identity

import (
	"context"

	"github.com/google/uuid"
)

// MembershipRepository defines the interface for membership persistence.
// Lookups here are privileged: they are not filtered by tenant, because the
// active membership is what determines the tenant in the first place.
type MembershipRepository interface {
	// FindByID finds a membership by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Membership, error)

	// FindActiveByUser finds the single active membership for a user.
	// Returns shared.ErrNotFound when the user has no active membership.
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*Membership, error)

	// FindByUserAndTenant finds a user's membership (active or not) in a tenant
	FindByUserAndTenant(ctx context.Context, userID, tenantID uuid.UUID) (*Membership, error)

	// FindByTenant lists memberships of a tenant
	FindByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]Membership, error)

	// Save creates or updates a membership
	Save(ctx context.Context, m *Membership) error

	// AssignActive atomically makes m the user's only active membership:
	// within one transaction it deactivates any other active memberships of
	// the user and inserts m, falling back to updating the existing active
	// row in place when the partial unique index on (user_id) WHERE active
	// reports a conflict. Returns the membership that ended up active.
	AssignActive(ctx context.Context, m *Membership) (*Membership, error)

	// CountActiveByUser counts active memberships for a user. Used by tests
	// to verify the single-active-membership invariant.
	CountActiveByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
