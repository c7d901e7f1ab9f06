package identity

import (
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for user aggregate
const (
	EventTypeUserCreated     = "user.created"
	EventTypeUserDeactivated = "user.deactivated"
)

// UserCreatedEvent is raised when a user account is registered. Users
// have no tenant at creation time, so the tenant id is always nil.
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(u *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, "User", u.ID, uuid.Nil),
		Email:           u.Email,
		FullName:        u.FullName,
	}
}

// UserDeactivatedEvent is raised when a user account is disabled
type UserDeactivatedEvent struct {
	shared.BaseDomainEvent
	Email string `json:"email"`
}

// NewUserDeactivatedEvent creates a new UserDeactivatedEvent
func NewUserDeactivatedEvent(u *User) *UserDeactivatedEvent {
	return &UserDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDeactivated, "User", u.ID, uuid.Nil),
		Email:           u.Email,
	}
}
