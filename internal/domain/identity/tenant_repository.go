package identity

import (
	"context"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TenantRepository defines the interface for tenant persistence
type TenantRepository interface {
	// FindByID finds a tenant by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tenant, error)

	// FindByContactEmail finds a tenant by its contact email
	FindByContactEmail(ctx context.Context, email string) (*Tenant, error)

	// FindAll finds all tenants matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Tenant, error)

	// FindByStatus finds tenants by lifecycle status
	FindByStatus(ctx context.Context, status TenantStatus, filter shared.Filter) ([]Tenant, error)

	// Save creates or updates a tenant
	Save(ctx context.Context, tenant *Tenant) error

	// Count counts tenants matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
