package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/domain/identity"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormTenantRepository implements TenantRepository using GORM
type GormTenantRepository struct {
	db *gorm.DB
}

// NewGormTenantRepository creates a new GormTenantRepository
func NewGormTenantRepository(db *gorm.DB) *GormTenantRepository {
	return &GormTenantRepository{db: db}
}

// FindByID finds a tenant by its ID
func (r *GormTenantRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByContactEmail finds a tenant by its contact email
func (r *GormTenantRepository) FindByContactEmail(ctx context.Context, email string) (*identity.Tenant, error) {
	var model models.TenantModel
	if err := r.db.WithContext(ctx).First(&model, "contact_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all tenants matching the filter
func (r *GormTenantRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Tenant, error) {
	return r.findWhere(ctx, filter, nil)
}

// FindByStatus finds tenants by lifecycle status
func (r *GormTenantRepository) FindByStatus(ctx context.Context, status identity.TenantStatus, filter shared.Filter) ([]identity.Tenant, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", status)
	})
}

func (r *GormTenantRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]identity.Tenant, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	if scope != nil {
		query = scope(query)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR contact_email ILIKE ?", pattern, pattern)
	}

	orderBy := ValidateSortField(filter.OrderBy, TenantSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var tenantModels []models.TenantModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&tenantModels).Error; err != nil {
		return nil, err
	}

	tenants := make([]identity.Tenant, len(tenantModels))
	for i, model := range tenantModels {
		tenants[i] = *model.ToDomain()
	}
	return tenants, nil
}

// Save creates or updates a tenant
func (r *GormTenantRepository) Save(ctx context.Context, tenant *identity.Tenant) error {
	model := models.TenantModelFromDomain(tenant)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts tenants matching the filter
func (r *GormTenantRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TenantModel{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("company_name ILIKE ? OR contact_email ILIKE ?", pattern, pattern)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormTenantRepository implements TenantRepository
var _ identity.TenantRepository = (*GormTenantRepository)(nil)
