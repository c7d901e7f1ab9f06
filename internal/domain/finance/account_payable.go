package finance

import (
	"fmt"
	"time"

	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayableStatus represents the status of an account payable
type PayableStatus string

const (
	PayableStatusPending   PayableStatus = "pending"   // Awaiting settlement
	PayableStatusPaid      PayableStatus = "paid"      // Settled; exactly one ledger transaction references it
	PayableStatusOverdue   PayableStatus = "overdue"   // Derived: pending with due date in the past
	PayableStatusPartial   PayableStatus = "partial"   // Partially covered upstream; not settleable here
	PayableStatusCancelled PayableStatus = "cancelled" // Cancelled before settlement
)

// IsValid checks if the status is a valid PayableStatus
func (s PayableStatus) IsValid() bool {
	switch s {
	case PayableStatusPending, PayableStatusPaid, PayableStatusOverdue,
		PayableStatusPartial, PayableStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PayableStatus
func (s PayableStatus) String() string {
	return string(s)
}

// CanSettle returns true if the payable may be settled in this status.
// Only pending and overdue payables are settleable; overdue is a derived
// presentation of pending, never a barrier to payment.
func (s PayableStatus) CanSettle() bool {
	return s == PayableStatusPending || s == PayableStatusOverdue
}

// PayableSource identifies what created the payable
type PayableSource string

const (
	PayableSourceManual           PayableSource = "manual"            // Entered by a user
	PayableSourceSupplierSchedule PayableSource = "supplier_schedule" // Synced from a supplier's scheduled payment
)

// AccountPayable is a monetary obligation the tenant owes. The amount is
// immutable after creation; the only transition out of pending/overdue is
// settlement, performed exclusively by the settlement engine.
type AccountPayable struct {
	shared.TenantAggregateRoot
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Source        PayableSource   `json:"source"`
	DueDate       time.Time       `json:"due_date"`
	Status        PayableStatus   `json:"status"`
	PaidDate      *time.Time      `json:"paid_date"`
	BankAccountID *uuid.UUID      `json:"bank_account_id"` // Account the payment was drawn from
	SupplierName  string          `json:"supplier_name"`
	CancelledAt   *time.Time      `json:"cancelled_at"`
	CancelReason  string          `json:"cancel_reason"`
}

// NewAccountPayable creates a new pending account payable
func NewAccountPayable(
	tenantID uuid.UUID,
	description string,
	amount valueobject.Money,
	category string,
	source PayableSource,
	dueDate time.Time,
	supplierName string,
) (*AccountPayable, error) {
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
		source = PayableSourceManual
	}

	ap := &AccountPayable{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Description:         description,
		Amount:              amount.Amount(),
		Category:            category,
		Source:              source,
		DueDate:             dueDate,
		Status:              PayableStatusPending,
		SupplierName:        supplierName,
	}

	ap.AddDomainEvent(NewAccountPayableCreatedEvent(ap))

	return ap, nil
}

// MarkPaid transitions the payable to paid. Called only by the settlement
// engine inside its database transaction; no other code path may perform
// this transition.
func (ap *AccountPayable) MarkPaid(bankAccountID uuid.UUID, paidAt time.Time) error {
	if !ap.Status.CanSettle() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot pay a payable in %s status", ap.Status))
	}
	if bankAccountID == uuid.Nil {
		return shared.NewDomainError("INVALID_ACCOUNT", "Bank account ID cannot be empty")
	}

	ap.Status = PayableStatusPaid
	ap.PaidDate = &paidAt
	ap.BankAccountID = &bankAccountID
	ap.UpdatedAt = time.Now()
	ap.IncrementVersion()

	ap.AddDomainEvent(NewAccountPayablePaidEvent(ap))

	return nil
}

// MarkOverdue flips a pending payable whose due date has passed to the
// derived overdue status. Cosmetic only: settlement accepts both.
func (ap *AccountPayable) MarkOverdue(now time.Time) error {
	if ap.Status != PayableStatusPending {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark a %s payable overdue", ap.Status))
	}
	if !ap.IsOverdue(now) {
		return shared.NewDomainError("INVALID_STATE", "Payable is not past due")
	}
	ap.Status = PayableStatusOverdue
	ap.UpdatedAt = time.Now()
	ap.IncrementVersion()
	return nil
}

// Cancel cancels the payable before settlement
func (ap *AccountPayable) Cancel(reason string) error {
	if !ap.Status.CanSettle() {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel a payable in %s status", ap.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	ap.Status = PayableStatusCancelled
	ap.CancelledAt = &now
	ap.CancelReason = reason
	ap.UpdatedAt = now
	ap.IncrementVersion()

	ap.AddDomainEvent(NewAccountPayableCancelledEvent(ap))

	return nil
}

// IsOverdue returns true if the payable is pending and its due date is
// strictly before the start of the current UTC day.
func (ap *AccountPayable) IsOverdue(now time.Time) bool {
	if ap.Status != PayableStatusPending && ap.Status != PayableStatusOverdue {
		return false
	}
	return ap.DueDate.Before(StartOfDayUTC(now))
}

// EffectiveStatus returns the status with the derived overdue rule applied,
// without mutating the aggregate. Used by read paths.
func (ap *AccountPayable) EffectiveStatus(now time.Time) PayableStatus {
	if ap.Status == PayableStatusPending && ap.IsOverdue(now) {
		return PayableStatusOverdue
	}
	return ap.Status
}

// GetAmountMoney returns the amount as Money value object
func (ap *AccountPayable) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyBRL(ap.Amount)
}

// IsPaid returns true if the payable is settled
func (ap *AccountPayable) IsPaid() bool {
	return ap.Status == PayableStatusPaid
}

// StartOfDayUTC truncates t to the start of its UTC day. The overdue rule
// is evaluated consistently in UTC across read paths and the sweep job.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
