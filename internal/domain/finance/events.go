package finance

import (
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types for finance aggregates
const (
	EventTypeAccountPayableCreated      = "account_payable.created"
	EventTypeAccountPayablePaid         = "account_payable.paid"
	EventTypeAccountPayableCancelled    = "account_payable.cancelled"
	EventTypeAccountReceivableCreated   = "account_receivable.created"
	EventTypeAccountReceivableReceived  = "account_receivable.received"
	EventTypeAccountReceivableCancelled = "account_receivable.cancelled"
	EventTypeLedgerTransactionPosted    = "ledger_transaction.posted"
)

// AccountPayableCreatedEvent is raised when a payable is created
type AccountPayableCreatedEvent struct {
	shared.BaseDomainEvent
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
}

// NewAccountPayableCreatedEvent creates a new AccountPayableCreatedEvent
func NewAccountPayableCreatedEvent(ap *AccountPayable) *AccountPayableCreatedEvent {
	return &AccountPayableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayableCreated, "AccountPayable", ap.ID, ap.TenantID),
		Amount:          ap.Amount,
		DueDate:         ap.DueDate,
	}
}

// AccountPayablePaidEvent is raised when a payable is settled
type AccountPayablePaidEvent struct {
	shared.BaseDomainEvent
	Amount        decimal.Decimal `json:"amount"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	PaidDate      time.Time       `json:"paid_date"`
}

// NewAccountPayablePaidEvent creates a new AccountPayablePaidEvent
func NewAccountPayablePaidEvent(ap *AccountPayable) *AccountPayablePaidEvent {
	e := &AccountPayablePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayablePaid, "AccountPayable", ap.ID, ap.TenantID),
		Amount:          ap.Amount,
	}
	if ap.BankAccountID != nil {
		e.BankAccountID = *ap.BankAccountID
	}
	if ap.PaidDate != nil {
		e.PaidDate = *ap.PaidDate
	}
	return e
}

// AccountPayableCancelledEvent is raised when a payable is cancelled
type AccountPayableCancelledEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewAccountPayableCancelledEvent creates a new AccountPayableCancelledEvent
func NewAccountPayableCancelledEvent(ap *AccountPayable) *AccountPayableCancelledEvent {
	return &AccountPayableCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountPayableCancelled, "AccountPayable", ap.ID, ap.TenantID),
		Reason:          ap.CancelReason,
	}
}

// AccountReceivableCreatedEvent is raised when a receivable is created
type AccountReceivableCreatedEvent struct {
	shared.BaseDomainEvent
	Amount  decimal.Decimal `json:"amount"`
	DueDate time.Time       `json:"due_date"`
}

// NewAccountReceivableCreatedEvent creates a new AccountReceivableCreatedEvent
func NewAccountReceivableCreatedEvent(ar *AccountReceivable) *AccountReceivableCreatedEvent {
	return &AccountReceivableCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableCreated, "AccountReceivable", ar.ID, ar.TenantID),
		Amount:          ar.Amount,
		DueDate:         ar.DueDate,
	}
}

// AccountReceivableReceivedEvent is raised when a receivable is settled
type AccountReceivableReceivedEvent struct {
	shared.BaseDomainEvent
	Amount        decimal.Decimal `json:"amount"`
	BankAccountID uuid.UUID       `json:"bank_account_id"`
	ReceivedDate  time.Time       `json:"received_date"`
}

// NewAccountReceivableReceivedEvent creates a new AccountReceivableReceivedEvent
func NewAccountReceivableReceivedEvent(ar *AccountReceivable) *AccountReceivableReceivedEvent {
	e := &AccountReceivableReceivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableReceived, "AccountReceivable", ar.ID, ar.TenantID),
		Amount:          ar.Amount,
	}
	if ar.BankAccountID != nil {
		e.BankAccountID = *ar.BankAccountID
	}
	if ar.ReceivedDate != nil {
		e.ReceivedDate = *ar.ReceivedDate
	}
	return e
}

// AccountReceivableCancelledEvent is raised when a receivable is cancelled
type AccountReceivableCancelledEvent struct {
	shared.BaseDomainEvent
	Reason string `json:"reason"`
}

// NewAccountReceivableCancelledEvent creates a new AccountReceivableCancelledEvent
func NewAccountReceivableCancelledEvent(ar *AccountReceivable) *AccountReceivableCancelledEvent {
	return &AccountReceivableCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAccountReceivableCancelled, "AccountReceivable", ar.ID, ar.TenantID),
		Reason:          ar.CancelReason,
	}
}

// LedgerTransactionPostedEvent is raised when a ledger transaction is posted
type LedgerTransactionPostedEvent struct {
	shared.BaseDomainEvent
	Direction TransactionDirection `json:"direction"`
	Amount    decimal.Decimal      `json:"amount"`
}

// NewLedgerTransactionPostedEvent creates a new LedgerTransactionPostedEvent
func NewLedgerTransactionPostedEvent(t *LedgerTransaction) *LedgerTransactionPostedEvent {
	return &LedgerTransactionPostedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLedgerTransactionPosted, "LedgerTransaction", t.ID, t.TenantID),
		Direction:       t.Direction,
		Amount:          t.Amount,
	}
}
