package identity

import (
	"github.com/finflow/backend/internal/domain/shared"
)

// Event types for tenant aggregate
const (
	EventTypeTenantCreated       = "tenant.created"
	EventTypeTenantStatusChanged = "tenant.status_changed"
)

// TenantCreatedEvent is raised when a new tenant is created
type TenantCreatedEvent struct {
	shared.BaseDomainEvent
	CompanyName  string `json:"company_name"`
	ContactEmail string `json:"contact_email"`
}

// NewTenantCreatedEvent creates a new TenantCreatedEvent
func NewTenantCreatedEvent(t *Tenant) *TenantCreatedEvent {
	return &TenantCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantCreated, "Tenant", t.ID, t.ID),
		CompanyName:     t.CompanyName,
		ContactEmail:    t.ContactEmail,
	}
}

// TenantStatusChangedEvent is raised when a tenant's lifecycle status changes
type TenantStatusChangedEvent struct {
	shared.BaseDomainEvent
	Status TenantStatus `json:"status"`
}

// NewTenantStatusChangedEvent creates a new TenantStatusChangedEvent
func NewTenantStatusChangedEvent(t *Tenant) *TenantStatusChangedEvent {
	return &TenantStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTenantStatusChanged, "Tenant", t.ID, t.ID),
		Status:          t.Status,
	}
}
