package identity

import (
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for membership aggregate
const (
	EventTypeMembershipAssigned = "membership.assigned"
	EventTypeMembershipRevoked  = "membership.revoked"
)

// MembershipAssignedEvent is raised when a user is assigned to a tenant
type MembershipAssignedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID      `json:"user_id"`
	Role   MembershipRole `json:"role"`
}

// NewMembershipAssignedEvent creates a new MembershipAssignedEvent
func NewMembershipAssignedEvent(m *Membership) *MembershipAssignedEvent {
	return &MembershipAssignedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMembershipAssigned, "Membership", m.ID, m.TenantID),
		UserID:          m.UserID,
		Role:            m.Role,
	}
}

// MembershipRevokedEvent is raised when a membership is deactivated
type MembershipRevokedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
}

// NewMembershipRevokedEvent creates a new MembershipRevokedEvent
func NewMembershipRevokedEvent(m *Membership) *MembershipRevokedEvent {
	return &MembershipRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMembershipRevoked, "Membership", m.ID, m.TenantID),
		UserID:          m.UserID,
	}
}
