package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormAccountPayableRepository implements AccountPayableRepository using GORM
type GormAccountPayableRepository struct {
	db *gorm.DB
}

// NewGormAccountPayableRepository creates a new GormAccountPayableRepository
func NewGormAccountPayableRepository(db *gorm.DB) *GormAccountPayableRepository {
	return &GormAccountPayableRepository{db: db}
}

// FindByIDForTenant finds a payable by ID within a tenant
func (r *GormAccountPayableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads a payable under a FOR UPDATE row lock. Must run
// inside a transaction; concurrent settlements of the same payable block
// here until the winner commits.
func (r *GormAccountPayableRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountPayable, error) {
	var model models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists payables of a tenant ordered by due date
func (r *GormAccountPayableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) ([]finance.AccountPayable, error) {
	query := applyObligationFilter(
		r.db.WithContext(ctx).Model(&models.AccountPayableModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var payableModels []models.AccountPayableModel
	if err := query.
		Order("due_date ASC, created_at ASC").
		Offset(obligationOffset(filter)).
		Limit(obligationLimit(filter)).
		Find(&payableModels).Error; err != nil {
		return nil, err
	}

	payables := make([]finance.AccountPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// FindPendingDueBefore finds pending payables due before the cutoff.
// Used by the overdue sweep; deliberately cross-tenant.
func (r *GormAccountPayableRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]finance.AccountPayable, error) {
	var payableModels []models.AccountPayableModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", finance.PayableStatusPending, cutoff).
		Order("due_date ASC").
		Limit(limit).
		Find(&payableModels).Error; err != nil {
		return nil, err
	}

	payables := make([]finance.AccountPayable, len(payableModels))
	for i, model := range payableModels {
		payables[i] = *model.ToDomain()
	}
	return payables, nil
}

// Save creates or updates a payable
func (r *GormAccountPayableRepository) Save(ctx context.Context, ap *finance.AccountPayable) error {
	model := models.AccountPayableModelFromDomain(ap)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts payables matching the filter
func (r *GormAccountPayableRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) (int64, error) {
	query := applyObligationFilter(
		r.db.WithContext(ctx).Model(&models.AccountPayableModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// applyObligationFilter narrows a payable/receivable query. Shared between
// the two obligation repositories since the filter shape is identical.
func applyObligationFilter(query *gorm.DB, filter finance.ObligationFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.DueFrom != nil {
		query = query.Where("due_date >= ?", *filter.DueFrom)
	}
	if filter.DueTo != nil {
		query = query.Where("due_date <= ?", *filter.DueTo)
	}
	return query
}

func obligationOffset(filter finance.ObligationFilter) int {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * obligationLimit(filter)
}

func obligationLimit(filter finance.ObligationFilter) int {
	if filter.PageSize < 1 {
		return 20
	}
	return filter.PageSize
}

// Ensure GormAccountPayableRepository implements AccountPayableRepository
var _ finance.AccountPayableRepository = (*GormAccountPayableRepository)(nil)
