package finance

import (
	"fmt"
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReceivableStatus represents the status of an account receivable
type ReceivableStatus string

const (
	ReceivableStatusPending   ReceivableStatus = "pending"
	ReceivableStatusReceived  ReceivableStatus = "received"
	ReceivableStatusOverdue   ReceivableStatus = "overdue"
	ReceivableStatusPartial   ReceivableStatus = "partial"
	ReceivableStatusCancelled ReceivableStatus = "cancelled"
)

// IsValid checks if the status is a valid ReceivableStatus
func (s ReceivableStatus) IsValid() bool {
	switch s {
	case ReceivableStatusPending, ReceivableStatusReceived, ReceivableStatusOverdue,
		ReceivableStatusPartial, ReceivableStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of ReceivableStatus
func (s ReceivableStatus) String() string {
	return string(s)
}

// CanSettle returns true if the receivable may be settled in this status
func (s ReceivableStatus) CanSettle() bool {
	return s == ReceivableStatusPending || s == ReceivableStatusOverdue
}

// ReceivableSource identifies what created the receivable
type ReceivableSource string

const (
	ReceivableSourceManual   ReceivableSource = "manual"   // Entered by a user
	ReceivableSourceProposal ReceivableSource = "proposal" // Generated from an accepted sales proposal
)

// AccountReceivable is a monetary amount owed to the tenant. The amount is
// immutable after creation; the only transition out of pending/overdue is
// settlement, performed exclusively by the settlement engine.
type AccountReceivable struct {
	shared.TenantAggregateRoot
	Description   string           `json:"description"`
	Amount        decimal.Decimal  `json:"amount"`
	Category      string           `json:"category"`
	Source        ReceivableSource `json:"source"`
	DueDate       time.Time        `json:"due_date"`
	Status        ReceivableStatus `json:"status"`
	ReceivedDate  *time.Time       `json:"received_date"`
	BankAccountID *uuid.UUID       `json:"bank_account_id"` // Account the funds were credited to
	PayerName     string           `json:"payer_name"`
	CancelledAt   *time.Time       `json:"cancelled_at"`
	CancelReason  string           `json:"cancel_reason"`
}

// NewAccountReceivable creates a new pending account receivable
func NewAccountReceivable(
	tenantID uuid.UUID,
	description string,
	amount valueobject.Money,
	category string,
	source ReceivableSource,
	dueDate time.Time,
	payerName string,
) (*AccountReceivable, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot be empty")
	}
	if len(description) > 500 {
		return nil, shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}
	if amount.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	if source == "" {
		source = ReceivableSourceManual
	}

	ar := &AccountReceivable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Amount:              amount.Amount(),
		Category:            category,
		Source:              source,
		DueDate:             dueDate,
		Status:              ReceivableStatusPending,
		PayerName:           payerName,
	}

	ar.AddDomainEvent(NewAccountReceivableCreatedEvent(ar))

	return ar, nil
}

// MarkReceived transitions the receivable to received. Called only by the
// settlement engine inside its database transaction.
func (ar *AccountReceivable) MarkReceived(bankAccountID uuid.UUID, receivedAt time.Time) error {
	if !ar.Status.CanSettle() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot receive a receivable in %s status", ar.Status))
	}
	if bankAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Bank account ID cannot be empty")
	}

	ar.Status = ReceivableStatusReceived
	ar.ReceivedDate = &receivedAt
	ar.BankAccountID = &bankAccountID
	ar.UpdatedAt = time.Now()
	ar.IncrementVersion()

	ar.AddDomainEvent(NewAccountReceivableReceivedEvent(ar))

	return nil
}

// MarkOverdue flips a pending receivable whose due date has passed to the
// derived overdue status
func (ar *AccountReceivable) MarkOverdue(now time.Time) error {
	if ar.Status != ReceivableStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s receivable overdue", ar.Status))
	}
	if !ar.IsOverdue(now) {
		return shared.NewDomainError("INVALID_STATE", "Receivable is not past due")
	}
	ar.Status = ReceivableStatusOverdue
	ar.UpdatedAt = time.Now()
	ar.IncrementVersion()
	return nil
}

// Cancel cancels the receivable before settlement
func (ar *AccountReceivable) Cancel(reason string) error {
	if !ar.Status.CanSettle() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a receivable in %s status", ar.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	ar.Status = ReceivableStatusCancelled
	ar.CancelledAt = &now
	ar.CancelReason = reason
	ar.UpdatedAt = now
	ar.IncrementVersion()

	ar.AddDomainEvent(NewAccountReceivableCancelledEvent(ar))

	return nil
}

// IsOverdue returns true if the receivable is pending and its due date is
// strictly before the start of the current UTC day
func (ar *AccountReceivable) IsOverdue(now time.Time) bool {
	if ar.Status != ReceivableStatusPending && ar.Status != ReceivableStatusOverdue {
		return false
	}
	return ar.DueDate.Before(StartOfDayUTC(now))
}

// EffectiveStatus returns the status with the derived overdue rule applied,
// without mutating the aggregate
func (ar *AccountReceivable) EffectiveStatus(now time.Time) ReceivableStatus {
	if ar.Status == ReceivableStatusPending && ar.IsOverdue(now) {
		return ReceivableStatusOverdue
	}
	return ar.Status
}

// GetAmountMoney returns the amount as Money value object
func (ar *AccountReceivable) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(ar.Amount)
}

// IsReceived returns true if the receivable is settled
func (ar *AccountReceivable) IsReceived() bool {
	return ar.Status == ReceivableStatusReceived
}
