package identity

import (
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// MembershipRole is the role a user holds within a tenant
type MembershipRole string

const (
	MembershipRoleAdmin    MembershipRole = "admin"
	MembershipRoleFinance  MembershipRole = "finance"
	MembershipRoleCommerce MembershipRole = "commerce"
	MembershipRoleUser     MembershipRole = "user"
)

// IsValid checks if the role is a known MembershipRole
func (r MembershipRole) IsValid() bool {
	switch r {
	case MembershipRoleAdmin, MembershipRoleFinance, MembershipRoleCommerce, MembershipRoleUser:
		return true
	}
	return false
}

// Membership associates a user with a tenant. At most one membership per
// user may be active at a time; reassignment deactivates the previous one
// instead of deleting it, so the history of tenant assignments is kept.
type Membership struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID      `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID      `gorm:"type:uuid;not null;index"`
	Role          MembershipRole `gorm:"type:varchar(30);not null;default:'user'"`
	Active        bool           `gorm:"not null;default:true"`
	DeactivatedAt *time.Time
}

// TableName returns the table name for GORM
func (Membership) TableName() string {
	return "tenant_memberships"
}

// NewMembership creates a new active membership
func NewMembership(userID, tenantID uuid.UUID, role MembershipRole) (*Membership, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if role == "" {
		role = MembershipRoleUser
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Membership role is not valid")
	}

	m := &Membership{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		TenantID:          tenantID,
		Role:              role,
		Active:            true,
	}

	m.AddDomainEvent(NewMembershipAssignedEvent(m))

	return m, nil
}

// Deactivate marks the membership as inactive. Memberships are never
// hard-deleted.
func (m *Membership) Deactivate() {
	if !m.Active {
		return
	}
	now := time.Now()
	m.Active = false
	m.DeactivatedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	m.AddDomainEvent(NewMembershipRevokedEvent(m))
}

// Reassign points an existing active membership at a different tenant and
// role. Used as the conflict fallback when two assignments race on the
// single-active-membership constraint.
func (m *Membership) Reassign(tenantID uuid.UUID, role MembershipRole) error {
	if !m.Active {
		return shared.NewDomainError("INVALID_STATE", "Cannot reassign an inactive membership")
	}
	if tenantID == uuid.Nil {
		return shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Membership role is not valid")
	}
	m.TenantID = tenantID
	m.Role = role
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	m.AddDomainEvent(NewMembershipAssignedEvent(m))

	return nil
}
