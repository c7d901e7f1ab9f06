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

// GormAccountReceivableRepository implements AccountReceivableRepository using GORM
type GormAccountReceivableRepository struct {
	db *gorm.DB
}

// NewGormAccountReceivableRepository creates a new GormAccountReceivableRepository
func NewGormAccountReceivableRepository(db *gorm.DB) *GormAccountReceivableRepository {
	return &GormAccountReceivableRepository{db: db}
}

// FindByIDForTenant finds a receivable by ID within a tenant
func (r *GormAccountReceivableRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	var model models.AccountReceivableModel
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

// FindByIDForUpdate loads a receivable under a FOR UPDATE row lock
func (r *GormAccountReceivableRepository) FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*finance.AccountReceivable, error) {
	var model models.AccountReceivableModel
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

// FindAllForTenant lists receivables of a tenant ordered by due date
func (r *GormAccountReceivableRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) ([]finance.AccountReceivable, error) {
	query := applyObligationFilter(
		r.db.WithContext(ctx).Model(&models.AccountReceivableModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)

	var receivableModels []models.AccountReceivableModel
	if err := query.
		Order("due_date ASC, created_at ASC").
		Offset(obligationOffset(filter)).
		Limit(obligationLimit(filter)).
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]finance.AccountReceivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables, nil
}

// FindPendingDueBefore finds pending receivables due before the cutoff
func (r *GormAccountReceivableRepository) FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]finance.AccountReceivable, error) {
	var receivableModels []models.AccountReceivableModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND due_date < ?", finance.ReceivableStatusPending, cutoff).
		Order("due_date ASC").
		Limit(limit).
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]finance.AccountReceivable, len(receivableModels))
	for i, model := range receivableModels {
		receivables[i] = *model.ToDomain()
	}
	return receivables, nil
}

// Save creates or updates a receivable
func (r *GormAccountReceivableRepository) Save(ctx context.Context, ar *finance.AccountReceivable) error {
	model := models.AccountReceivableModelFromDomain(ar)
	return r.db.WithContext(ctx).Save(model).Error
}

// CountForTenant counts receivables matching the filter
func (r *GormAccountReceivableRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter finance.ObligationFilter) (int64, error) {
	query := applyObligationFilter(
		r.db.WithContext(ctx).Model(&models.AccountReceivableModel{}).Where("tenant_id = ?", tenantID),
		filter,
	)
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// Ensure GormAccountReceivableRepository implements AccountReceivableRepository
var _ finance.AccountReceivableRepository = (*GormAccountReceivableRepository)(nil)
