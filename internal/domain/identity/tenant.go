package identity

import (
	"strings"
	"time"

	"github.com/finflow/backend/internal/domain/shared"
)

// TenantStatus represents the lifecycle status of a tenant
type TenantStatus string

const (
	TenantStatusTrial     TenantStatus = "trial"     // Evaluation period, full access
	TenantStatusActive    TenantStatus = "active"    // Paying customer
	TenantStatusSuspended TenantStatus = "suspended" // Temporarily disabled (payment issues)
	TenantStatusBlocked   TenantStatus = "blocked"   // Permanently disabled
)

// IsValid checks if the status is a valid TenantStatus
func (s TenantStatus) IsValid() bool {
	switch s {
	case TenantStatusTrial, TenantStatusActive, TenantStatusSuspended, TenantStatusBlocked:
		return true
	}
	return false
}

// String returns the string representation of TenantStatus
func (s TenantStatus) String() string {
	return string(s)
}

// CanOperate returns true if users of this tenant may read and write data
func (s TenantStatus) CanOperate() bool {
	return s == TenantStatusTrial || s == TenantStatusActive
}

// Tenant represents an isolated customer organization in the multi-tenant
// system. It owns all obligations, ledger transactions and memberships
// scoped to it.
type Tenant struct {
	shared.BaseAggregateRoot
	CompanyName  string       `gorm:"type:varchar(200);not null"`
	ContactName  string       `gorm:"type:varchar(100);not null"`
	ContactEmail string       `gorm:"type:varchar(200);not null;uniqueIndex"`
	ContactPhone string       `gorm:"type:varchar(50)"`
	TaxID        string       `gorm:"type:varchar(20)"` // CNPJ
	Address      string       `gorm:"type:text"`
	City         string       `gorm:"type:varchar(100)"`
	State        string       `gorm:"type:varchar(2)"`
	Status       TenantStatus `gorm:"type:varchar(20);not null;default:'trial'"`
	TrialEndsAt  *time.Time
	BlockedAt    *time.Time
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant in trial status
func NewTenant(companyName, contactName, contactEmail string) (*Tenant, error) {
	if strings.TrimSpace(companyName) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if len(companyName) > 200 {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot exceed 200 characters")
	}
	if strings.TrimSpace(contactName) == "" {
		return nil, shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	if !strings.Contains(contactEmail, "@") {
		return nil, shared.NewDomainError("INVALID_CONTACT_EMAIL", "Contact email is not valid")
	}

	trialEnds := time.Now().AddDate(0, 0, 14)
	tenant := &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       companyName,
		ContactName:       contactName,
		ContactEmail:      strings.ToLower(contactEmail),
		Status:            TenantStatusTrial,
		TrialEndsAt:       &trialEnds,
	}

	tenant.AddDomainEvent(NewTenantCreatedEvent(tenant))

	return tenant, nil
}

// Activate converts a trial or suspended tenant into a paying one
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusBlocked {
		return shared.NewDomainError("INVALID_STATE", "Cannot activate a blocked tenant")
	}
	t.Status = TenantStatusActive
	t.TrialEndsAt = nil
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))

	return nil
}

// Suspend temporarily disables the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusBlocked {
		return shared.NewDomainError("INVALID_STATE", "Cannot suspend a blocked tenant")
	}
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))

	return nil
}

// Block permanently disables the tenant
func (t *Tenant) Block() error {
	if t.Status == TenantStatusBlocked {
		return shared.NewDomainError("INVALID_STATE", "Tenant is already blocked")
	}
	now := time.Now()
	t.Status = TenantStatusBlocked
	t.BlockedAt = &now
	t.UpdatedAt = now
	t.IncrementVersion()

	t.AddDomainEvent(NewTenantStatusChangedEvent(t))

	return nil
}

// UpdateContact updates contact details
func (t *Tenant) UpdateContact(name, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot be empty")
	}
	if !strings.Contains(email, "@") {
		return shared.NewDomainError("INVALID_CONTACT_EMAIL", "Contact email is not valid")
	}
	t.ContactName = name
	t.ContactEmail = strings.ToLower(email)
	t.ContactPhone = phone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// IsTrialExpired returns true if the tenant is in trial and past its end date
func (t *Tenant) IsTrialExpired() bool {
	if t.Status != TenantStatusTrial || t.TrialEndsAt == nil {
		return false
	}
	return time.Now().After(*t.TrialEndsAt)
}
