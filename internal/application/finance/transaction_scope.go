package finance

import (
	"context"

	"github.com/finflow/backend/internal/domain/finance"
)

// SettlementScope provides transactional access to the repositories a
// settlement touches. Everything executed within one scope shares a single
// database transaction: the idempotence check, the row lock, the ledger
// insert and the obligation update commit or roll back together.
type SettlementScope interface {
	// Execute runs fn within a database transaction. If fn returns an
	// error the transaction is rolled back; otherwise it is committed.
	Execute(ctx context.Context, fn func(repos SettlementRepositories) error) error
}

// SettlementRepositories provides access to the finance repositories within
// a transaction. All repositories returned share the same underlying
// database transaction.
type SettlementRepositories interface {
	// Payables returns the payable repository scoped to the current transaction
	Payables() finance.AccountPayableRepository
	// Receivables returns the receivable repository scoped to the current transaction
	Receivables() finance.AccountReceivableRepository
	// Ledger returns the ledger repository scoped to the current transaction
	Ledger() finance.LedgerTransactionRepository
	// BankAccounts returns the bank account repository scoped to the current transaction
	BankAccounts() finance.BankAccountRepository
}

// NoOpSettlementScope runs the scope function without a real transaction.
// Useful for tests where the fakes are not transactional anyway.
type NoOpSettlementScope struct {
	payables     finance.AccountPayableRepository
	receivables  finance.AccountReceivableRepository
	ledger       finance.LedgerTransactionRepository
	bankAccounts finance.BankAccountRepository
}

// NewNoOpSettlementScope creates a NoOpSettlementScope over the given repositories.
func NewNoOpSettlementScope(
	payables finance.AccountPayableRepository,
	receivables finance.AccountReceivableRepository,
	ledger finance.LedgerTransactionRepository,
	bankAccounts finance.BankAccountRepository,
) *NoOpSettlementScope {
	return &NoOpSettlementScope{
		payables:     payables,
		receivables:  receivables,
		ledger:       ledger,
		bankAccounts: bankAccounts,
	}
}

// Execute runs fn directly, without transaction semantics.
func (s *NoOpSettlementScope) Execute(_ context.Context, fn func(repos SettlementRepositories) error) error {
	return fn(s)
}

// Payables returns the payable repository.
func (s *NoOpSettlementScope) Payables() finance.AccountPayableRepository { return s.payables }

// Receivables returns the receivable repository.
func (s *NoOpSettlementScope) Receivables() finance.AccountReceivableRepository {
	return s.receivables
}

// Ledger returns the ledger repository.
func (s *NoOpSettlementScope) Ledger() finance.LedgerTransactionRepository { return s.ledger }

// BankAccounts returns the bank account repository.
func (s *NoOpSettlementScope) BankAccounts() finance.BankAccountRepository { return s.bankAccounts }

// Ensure NoOpSettlementScope implements both interfaces
var _ SettlementScope = (*NoOpSettlementScope)(nil)
var _ SettlementRepositories = (*NoOpSettlementScope)(nil)
