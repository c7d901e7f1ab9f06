package finance

import (
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionDirection is the direction of a monetary movement
type TransactionDirection string

const (
	DirectionIncome  TransactionDirection = "income"
	DirectionExpense TransactionDirection = "expense"
)

// IsValid checks if the direction is valid
func (d TransactionDirection) IsValid() bool {
	return d == DirectionIncome || d == DirectionExpense
}

// ReferenceType identifies the document a ledger transaction settles.
// Together with ReferenceID it forms the idempotence key: at most one
// ledger transaction may exist per (reference_type, reference_id) pair,
// which is what makes retried settlement calls safe no-ops.
type ReferenceType string

const (
	ReferenceAccountPayable    ReferenceType = "account_payable"
	ReferenceAccountReceivable ReferenceType = "account_receivable"
)

// IsValid checks if the reference type is valid
func (r ReferenceType) IsValid() bool {
	return r == ReferenceAccountPayable || r == ReferenceAccountReceivable
}

// LedgerTransaction is an immutable monetary movement on a bank account.
// Ledger transactions are append-only: the aggregate exposes no mutators.
type LedgerTransaction struct {
	shared.TenantAggregateRoot
	BankAccountID   uuid.UUID            `json:"bank_account_id"`
	Direction       TransactionDirection `json:"direction"`
	Amount          decimal.Decimal      `json:"amount"`
	Description     string               `json:"description"`
	Category        string               `json:"category"`
	TransactionDate time.Time            `json:"transaction_date"`
	ReferenceType   *ReferenceType       `json:"reference_type"` // nil for free-standing entries
	ReferenceID     *uuid.UUID           `json:"reference_id"`
}

// NewLedgerTransaction creates a free-standing ledger transaction with no
// settlement reference (e.g. a manual adjustment entry).
func NewLedgerTransaction(
	tenantID, bankAccountID uuid.UUID,
	direction TransactionDirection,
	amount valueobject.Money,
	description, category string,
	transactionDate time.Time,
) (*LedgerTransaction, error) {
	return newLedgerTransaction(tenantID, bankAccountID, direction, amount, description, category, transactionDate, nil, nil)
}

// NewSettlementTransaction creates the ledger transaction that settles an
// obligation. The reference pair is required and acts as the idempotence key.
func NewSettlementTransaction(
	tenantID, bankAccountID uuid.UUID,
	direction TransactionDirection,
	amount valueobject.Money,
	description, category string,
	transactionDate time.Time,
	refType ReferenceType,
	refID uuid.UUID,
) (*LedgerTransaction, error) {
	if !refType.IsValid() {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference type is not valid")
	}
	if refID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Reference ID cannot be empty")
	}
	return newLedgerTransaction(tenantID, bankAccountID, direction, amount, description, category, transactionDate, &refType, &refID)
}

func newLedgerTransaction(
	tenantID, bankAccountID uuid.UUID,
	direction TransactionDirection,
	amount valueobject.Money,
	description, category string,
	transactionDate time.Time,
	refType *ReferenceType,
	refID *uuid.UUID,
) (*LedgerTransaction, error) {
	if bankAccountID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ACCOUNT", "Bank account ID cannot be empty")
	}
	if !direction.IsValid() {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Transaction direction is not valid")
	}
	if amount.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if transactionDate.IsZero() {
		transactionDate = time.Now()
	}

	tx := &LedgerTransaction{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		BankAccountID:       bankAccountID,
		Direction:           direction,
		Amount:              amount.Amount(),
		Description:         description,
		Category:            category,
		TransactionDate:     transactionDate,
		ReferenceType:       refType,
		ReferenceID:         refID,
	}

	tx.AddDomainEvent(NewLedgerTransactionPostedEvent(tx))

	return tx, nil
}

// GetAmountMoney returns the amount as Money value object
func (t *LedgerTransaction) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(t.Amount)
}

// SignedAmount returns the amount with its direction applied: positive for
// income, negative for expense. Used by cash-flow aggregation.
func (t *LedgerTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionExpense {
		return t.Amount.Neg()
	}
	return t.Amount
}
