package models

import (
	"time"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// TenantModel is the persistence model for the Tenant aggregate root.
type TenantModel struct {
	AggregateModel
	CompanyName  string                `gorm:"type:varchar(200);not null"`
	ContactName  string                `gorm:"type:varchar(100);not null"`
	ContactEmail string                `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactPhone string                `gorm:"type:varchar(50)"`
	TaxID        string                `gorm:"type:varchar(20)"`
	Address      string                `gorm:"type:text"`
	City         string                `gorm:"type:varchar(100)"`
	State        string                `gorm:"type:varchar(2)"`
	Status       identity.TenantStatus `gorm:"type:varchar(20);not null;default:'trial';index"`
	TrialEndsAt  *time.Time
	BlockedAt    *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant
func (m *TenantModel) ToDomain() *identity.Tenant {
	return &identity.Tenant{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CompanyName:       m.CompanyName,
		ContactName:       m.ContactName,
		ContactEmail:      m.ContactEmail,
		ContactPhone:      m.ContactPhone,
		TaxID:             m.TaxID,
		Address:           m.Address,
		City:              m.City,
		State:             m.State,
		Status:            m.Status,
		TrialEndsAt:       m.TrialEndsAt,
		BlockedAt:         m.BlockedAt,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Tenant
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.CompanyName = t.CompanyName
	m.ContactName = t.ContactName
	m.ContactEmail = t.ContactEmail
	m.ContactPhone = t.ContactPhone
	m.TaxID = t.TaxID
	m.Address = t.Address
	m.City = t.City
	m.State = t.State
	m.Status = t.Status
	m.TrialEndsAt = t.TrialEndsAt
	m.BlockedAt = t.BlockedAt
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}

// UserModel is the persistence model for the User aggregate root.
type UserModel struct {
	AggregateModel
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	FullName     string `gorm:"type:varchar(150);not null"`
	PasswordHash string `gorm:"type:varchar(200);not null"`
	Active       bool   `gorm:"not null;default:true"`
	LastLoginAt  *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User
func (m *UserModel) ToDomain() *identity.User {
	return &identity.User{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		FullName:          m.FullName,
		PasswordHash:      m.PasswordHash,
		Active:            m.Active,
		LastLoginAt:       m.LastLoginAt,
	}
}

// FromDomain populates the persistence model from a domain User
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.Email = u.Email
	m.FullName = u.FullName
	m.PasswordHash = u.PasswordHash
	m.Active = u.Active
	m.LastLoginAt = u.LastLoginAt
}

// UserModelFromDomain creates a new persistence model from a domain User
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// MembershipModel is the persistence model for the Membership aggregate root.
// The partial unique index on (user_id) WHERE active enforces the
// single-active-membership invariant at the database level; the repository
// upserts against it so racing assignments repoint the surviving row.
type MembershipModel struct {
	AggregateModel
	UserID        uuid.UUID               `gorm:"type:uuid;not null;index"`
	TenantID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	Role          identity.MembershipRole `gorm:"type:varchar(30);not null;default:'user'"`
	Active        bool                    `gorm:"not null;default:true"`
	DeactivatedAt *time.Time
}

// TableName returns the table name for GORM
func (MembershipModel) TableName() string {
	return "tenant_memberships"
}

// ToDomain converts the persistence model to a domain Membership
func (m *MembershipModel) ToDomain() *identity.Membership {
	return &identity.Membership{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		TenantID:          m.TenantID,
		Role:              m.Role,
		Active:            m.Active,
		DeactivatedAt:     m.DeactivatedAt,
	}
}

// FromDomain populates the persistence model from a domain Membership
func (m *MembershipModel) FromDomain(mem *identity.Membership) {
	m.FromDomainAggregateRoot(mem.BaseAggregateRoot)
	m.UserID = mem.UserID
	m.TenantID = mem.TenantID
	m.Role = mem.Role
	m.Active = mem.Active
	m.DeactivatedAt = mem.DeactivatedAt
}

// MembershipModelFromDomain creates a new persistence model from a domain Membership
func MembershipModelFromDomain(mem *identity.Membership) *MembershipModel {
	m := &MembershipModel{}
	m.FromDomain(mem)
	return m
}

// AuditLogModel is an append-only record of sensitive identity operations
// such as onboarding and membership changes.
type AuditLogModel struct {
	BaseModel
	TenantID *uuid.UUID `gorm:"type:uuid;index"`
	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	Action   string     `gorm:"type:varchar(100);not null;index"`
	Detail   string     `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// NewAuditLogModel builds an audit row ready for insertion
func NewAuditLogModel(tenantID, userID *uuid.UUID, action, detail string) *AuditLogModel {
	now := time.Now()
	return &AuditLogModel{
		BaseModel: BaseModel{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID: tenantID,
		UserID:   userID,
		Action:   action,
		Detail:   detail,
	}
}
