package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/identity"
)

// SignupRequest represents a request to create a user account
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries the issued token and the authenticated user. It
// deliberately contains no tenant: the tenant is resolved per request from
// the active membership.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        UserResponse `json:"user"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	Active      bool       `json:"active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// OnboardTenantRequest provisions a tenant together with its first admin
// user, active membership and default bank account.
type OnboardTenantRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	ContactName   string `json:"contact_name" binding:"required"`
	ContactEmail  string `json:"contact_email" binding:"required,email"`
	AdminFullName string `json:"admin_full_name" binding:"required"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required,min=8"`
}

// TenantResponse represents a tenant in API responses
type TenantResponse struct {
	ID           uuid.UUID  `json:"id"`
	CompanyName  string     `json:"company_name"`
	ContactName  string     `json:"contact_name"`
	ContactEmail string     `json:"contact_email"`
	ContactPhone string     `json:"contact_phone,omitempty"`
	Status       string     `json:"status"`
	TrialEndsAt  *time.Time `json:"trial_ends_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// OnboardTenantResponse is the result of tenant onboarding
type OnboardTenantResponse struct {
	Tenant TenantResponse `json:"tenant"`
	Admin  UserResponse   `json:"admin"`
}

// AssignMembershipRequest assigns a user to a tenant
type AssignMembershipRequest struct {
	UserID   uuid.UUID `json:"user_id" binding:"required"`
	TenantID uuid.UUID `json:"tenant_id" binding:"required"`
	Role     string    `json:"role"`
}

// MembershipResponse represents a membership in API responses
type MembershipResponse struct {
	ID            uuid.UUID  `json:"id"`
	UserID        uuid.UUID  `json:"user_id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	Role          string     `json:"role"`
	Active        bool       `json:"active"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

func userToResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Active:      u.Active,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func tenantToResponse(t *identity.Tenant) TenantResponse {
	return TenantResponse{
		ID:           t.ID,
		CompanyName:  t.CompanyName,
		ContactName:  t.ContactName,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		Status:       t.Status.String(),
		TrialEndsAt:  t.TrialEndsAt,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func membershipToResponse(m *identity.Membership) MembershipResponse {
	return MembershipResponse{
		ID:            m.ID,
		UserID:        m.UserID,
		TenantID:      m.TenantID,
		Role:          string(m.Role),
		Active:        m.Active,
		DeactivatedAt: m.DeactivatedAt,
		CreatedAt:     m.CreatedAt,
	}
}
