package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/infrastructure/persistence/models"
)

// GormLedgerTransactionRepository implements LedgerTransactionRepository
// using GORM. The ledger is append-only: this repository exposes no update
// or delete.
type GormLedgerTransactionRepository struct {
	db *gorm.DB
}

// NewGormLedgerTransactionRepository creates a new GormLedgerTransactionRepository
func NewGormLedgerTransactionRepository(db *gorm.DB) *GormLedgerTransactionRepository {
	return &GormLedgerTransactionRepository{db: db}
}

// FindByIDForTenant finds a ledger transaction by ID within a tenant
func (r *GormLedgerTransactionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*finance.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
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

// FindByReference finds the ledger transaction settling the referenced
// obligation. This is the settlement idempotence check.
func (r *GormLedgerTransactionRepository) FindByReference(ctx context.Context, refType finance.ReferenceType, refID uuid.UUID) (*finance.LedgerTransaction, error) {
	var model models.LedgerTransactionModel
	if err := r.db.WithContext(ctx).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant lists ledger transactions of a tenant, newest first
func (r *GormLedgerTransactionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]finance.LedgerTransaction, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("tenant_id = ?", tenantID)
	})
}

// FindByBankAccount lists transactions for one bank account, newest first
func (r *GormLedgerTransactionRepository) FindByBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID, filter shared.Filter) ([]finance.LedgerTransaction, error) {
	return r.findWhere(ctx, filter, func(q *gorm.DB) *gorm.DB {
		return q.Where("tenant_id = ? AND bank_account_id = ?", tenantID, bankAccountID)
	})
}

func (r *GormLedgerTransactionRepository) findWhere(ctx context.Context, filter shared.Filter, scope func(*gorm.DB) *gorm.DB) ([]finance.LedgerTransaction, error) {
	orderBy := ValidateSortField(filter.OrderBy, LedgerSortFields, "transaction_date")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var txModels []models.LedgerTransactionModel
	if err := scope(r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{})).
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&txModels).Error; err != nil {
		return nil, err
	}

	txs := make([]finance.LedgerTransaction, len(txModels))
	for i, model := range txModels {
		txs[i] = *model.ToDomain()
	}
	return txs, nil
}

// Save inserts a ledger transaction. Always an insert: the unique index on
// (reference_type, reference_id) rejects a second settlement for the same
// obligation even if two transactions raced past FindByReference.
func (r *GormLedgerTransactionRepository) Save(ctx context.Context, tx *finance.LedgerTransaction) error {
	model := models.LedgerTransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Create(model).Error
}

// CountByReference counts transactions for a reference pair
func (r *GormLedgerTransactionRepository) CountByReference(ctx context.Context, refType finance.ReferenceType, refID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Where("reference_type = ? AND reference_id = ?", refType, refID).
		Count(&count).Error
	return count, err
}

// monthlyCashFlowRow is the raw aggregation row scanned from the database
type monthlyCashFlowRow struct {
	Month   time.Time
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// SummarizeByMonth aggregates income/expense per calendar month
func (r *GormLedgerTransactionRepository) SummarizeByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]finance.MonthlyCashFlow, error) {
	var rows []monthlyCashFlowRow
	err := r.db.WithContext(ctx).Model(&models.LedgerTransactionModel{}).
		Select(`date_trunc('month', transaction_date) AS month,
			COALESCE(SUM(amount) FILTER (WHERE direction = 'income'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE direction = 'expense'), 0) AS expense`).
		Where("tenant_id = ? AND transaction_date >= ? AND transaction_date < ?", tenantID, from, to).
		Group("date_trunc('month', transaction_date)").
		Order("month ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	summary := make([]finance.MonthlyCashFlow, len(rows))
	for i, row := range rows {
		summary[i] = finance.MonthlyCashFlow{
			Month:   row.Month,
			Income:  row.Income,
			Expense: row.Expense,
			Net:     row.Income.Sub(row.Expense),
		}
	}
	return summary, nil
}

// Ensure GormLedgerTransactionRepository implements LedgerTransactionRepository
var _ finance.LedgerTransactionRepository = (*GormLedgerTransactionRepository)(nil)
