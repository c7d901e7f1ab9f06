package persistence

import (
	"context"

	"gorm.io/gorm"

	appfinance "github.com/finflow/backend/internal/application/finance"
	"github.com/finflow/backend/internal/domain/finance"
)

// GormSettlementScope implements SettlementScope using GORM transactions.
// Every settlement runs its idempotence check, row lock, ledger insert and
// obligation update against the same *gorm.DB transaction handle, so a
// failure at any step rolls all of them back together.
type GormSettlementScope struct {
	db *gorm.DB
}

// NewGormSettlementScope creates a new GormSettlementScope
func NewGormSettlementScope(db *gorm.DB) *GormSettlementScope {
	return &GormSettlementScope{db: db}
}

// Execute runs the given function within a database transaction. If the
// function returns an error the transaction is rolled back; otherwise it
// is committed.
func (s *GormSettlementScope) Execute(ctx context.Context, fn func(repos appfinance.SettlementRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSettlementRepositories{tx: tx})
	})
}

// gormSettlementRepositories provides repositories bound to one transaction
type gormSettlementRepositories struct {
	tx *gorm.DB
}

// Payables returns the payable repository scoped to the current transaction
func (r *gormSettlementRepositories) Payables() finance.AccountPayableRepository {
	return NewGormAccountPayableRepository(r.tx)
}

// Receivables returns the receivable repository scoped to the current transaction
func (r *gormSettlementRepositories) Receivables() finance.AccountReceivableRepository {
	return NewGormAccountReceivableRepository(r.tx)
}

// Ledger returns the ledger repository scoped to the current transaction
func (r *gormSettlementRepositories) Ledger() finance.LedgerTransactionRepository {
	return NewGormLedgerTransactionRepository(r.tx)
}

// BankAccounts returns the bank account repository scoped to the current transaction
func (r *gormSettlementRepositories) BankAccounts() finance.BankAccountRepository {
	return NewGormBankAccountRepository(r.tx)
}

// Ensure the implementations satisfy the application contracts
var (
	_ appfinance.SettlementScope        = (*GormSettlementScope)(nil)
	_ appfinance.SettlementRepositories = (*gormSettlementRepositories)(nil)
)
