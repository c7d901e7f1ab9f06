package identity

import (
	"strings"
	"time"

	"github.com/finflow/backend/internal/domain/shared"
)

// User is an authenticated principal. Tenant association lives in
// Membership, not here, so a user can be moved between tenants without
// touching the auth identity.
type User struct {
	shared.BaseAggregateRoot
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName     string `gorm:"type:varchar(150);not null"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active user. The password must already be hashed.
func NewUser(email, fullName, passwordHash string) (*User, error) {
	if !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email is not valid")
	}
	if strings.TrimSpace(fullName) == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Full name cannot be empty")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password hash cannot be empty")
	}

	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(email),
		FullName:          fullName,
		PasswordHash:      passwordHash,
		Active:            true,
	}
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

// RecordLogin stores the login timestamp
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	u.IncrementVersion()
}

// Deactivate disables the user account
func (u *User) Deactivate() {
	u.Active = false
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	u.AddDomainEvent(NewUserDeactivatedEvent(u))
}
