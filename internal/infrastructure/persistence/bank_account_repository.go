package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByIDForTenant finds a bank account by ID within a tenant
func (r *GormBankAccountRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.BankAccount, error) {
	var model models.BankAccountModel
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

// FindAllForTenant lists a tenant's bank accounts
func (r *GormBankAccountRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]finance.BankAccount, error) {
	query := r.db.WithContext(ctx).
		Model(&models.BankAccountModel{}).
		Where("tenant_id = ?", tenantID)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var accountModels []models.BankAccountModel
	if err := query.Order("created_at ASC").Find(&accountModels).Error; err != nil {
		return nil, err
	}

	accounts := make([]finance.BankAccount, len(accountModels))
	for i, model := range accountModels {
		accounts[i] = *model.ToDomain()
	}
	return accounts, nil
}

// Save creates or updates a bank account
func (r *GormBankAccountRepository) Save(ctx context.Context, account *finance.BankAccount) error {
	model := models.BankAccountModelFromDomain(account)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormBankAccountRepository implements BankAccountRepository
var _ finance.BankAccountRepository = (*GormBankAccountRepository)(nil)
