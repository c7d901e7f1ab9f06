package finance

import (
	"context"
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ObligationFilter narrows payable/receivable queries
type ObligationFilter struct {
	Status   string
	Category string
	DueFrom  *time.Time
	DueTo    *time.Time
	Page     int
	PageSize int
}

// AccountPayableRepository defines the interface for payable persistence
type AccountPayableRepository interface {
	// FindByIDForTenant finds a payable by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*AccountPayable, error)

	// FindByIDForUpdate loads a payable under a FOR UPDATE row lock. Must be
	// called inside a settlement transaction; it serializes concurrent
	// settlement attempts on the same payable.
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*AccountPayable, error)

	// FindAllForTenant lists payables of a tenant ordered by due date
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ObligationFilter) ([]AccountPayable, error)

	// FindPendingDueBefore finds pending payables whose due date is before
	// the cutoff. Used by the overdue sweep.
	FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]AccountPayable, error)

	// Save creates or updates a payable
	Save(ctx context.Context, ap *AccountPayable) error

	// CountForTenant counts payables matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ObligationFilter) (int64, error)
}

// AccountReceivableRepository defines the interface for receivable persistence
type AccountReceivableRepository interface {
	// FindByIDForTenant finds a receivable by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*AccountReceivable, error)

	// FindByIDForUpdate loads a receivable under a FOR UPDATE row lock
	FindByIDForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*AccountReceivable, error)

	// FindAllForTenant lists receivables of a tenant ordered by due date
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter ObligationFilter) ([]AccountReceivable, error)

	// FindPendingDueBefore finds pending receivables due before the cutoff
	FindPendingDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]AccountReceivable, error)

	// Save creates or updates a receivable
	Save(ctx context.Context, ar *AccountReceivable) error

	// CountForTenant counts receivables matching the filter
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter ObligationFilter) (int64, error)
}

// MonthlyCashFlow is one month's aggregated ledger movement
type MonthlyCashFlow struct {
	Month   time.Time       `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// LedgerTransactionRepository defines the interface for ledger persistence.
// The ledger is append-only: there is no update or delete.
type LedgerTransactionRepository interface {
	// FindByIDForTenant finds a ledger transaction by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*LedgerTransaction, error)

	// FindByReference finds the ledger transaction settling the referenced
	// obligation. Returns shared.ErrNotFound when none exists. This is the
	// settlement idempotence check.
	FindByReference(ctx context.Context, refType ReferenceType, refID uuid.UUID) (*LedgerTransaction, error)

	// FindAllForTenant lists ledger transactions of a tenant, newest first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LedgerTransaction, error)

	// FindByBankAccount lists transactions for one bank account, newest first
	FindByBankAccount(ctx context.Context, tenantID, bankAccountID uuid.UUID, filter shared.Filter) ([]LedgerTransaction, error)

	// Save inserts a ledger transaction. The unique index on
	// (reference_type, reference_id) makes double-posting impossible even
	// if two transactions race past the FindByReference check.
	Save(ctx context.Context, tx *LedgerTransaction) error

	// CountByReference counts transactions for a reference pair. Expected
	// to be 0 or 1; used by invariants and tests.
	CountByReference(ctx context.Context, refType ReferenceType, refID uuid.UUID) (int64, error)

	// SummarizeByMonth aggregates income/expense per calendar month
	SummarizeByMonth(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]MonthlyCashFlow, error)
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	// FindByIDForTenant finds a bank account by ID within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*BankAccount, error)

	// FindAllForTenant lists a tenant's bank accounts
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]BankAccount, error)

	// Save creates or updates a bank account
	Save(ctx context.Context, account *BankAccount) error
}
