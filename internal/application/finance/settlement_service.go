package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
	"github.com/finflow/backend/internal/infrastructure/telemetry"
)

// SettlementService settles payables and receivables. A settlement is one
// database transaction that performs, in order:
//
//  1. idempotence check against the ledger reference index
//  2. row lock on the obligation (FOR UPDATE)
//  3. precondition check: status must be pending or overdue
//  4. bank account validation
//  5. one ledger transaction insert
//  6. obligation status update
//
// Any failure rolls back every step, so an obligation can never end up paid
// without its ledger transaction or vice versa.
type SettlementService struct {
	scope  SettlementScope
	events shared.EventPublisher
	now    func() time.Time
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(scope SettlementScope, events shared.EventPublisher) *SettlementService {
	return &SettlementService{
		scope:  scope,
		events: events,
		now:    time.Now,
	}
}

// SettlePayable pays an account payable from the given bank account.
// Calling it again for an already-paid payable is a no-op that returns the
// original ledger transaction with Idempotent set.
func (s *SettlementService) SettlePayable(ctx context.Context, tenantID, payableID uuid.UUID, req SettleRequest) (*SettlementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SettlementService", "SettlePayable")
	defer span.End()
	telemetry.SetAttributes(ctx, map[string]any{
		telemetry.SpanAttrTenantID:      tenantID,
		telemetry.SpanAttrPayableID:     payableID,
		telemetry.SpanAttrBankAccountID: req.BankAccountID,
	})

	var result *SettlementResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos SettlementRepositories) error {
		existing, err := repos.Ledger().FindByReference(ctx, finance.ReferenceAccountPayable, payableID)
		if err == nil {
			// Already settled: hand back the original transaction and the
			// obligation as it stands, without locking anything.
			payable, err := repos.Payables().FindByIDForTenant(ctx, tenantID, payableID)
			if err != nil {
				return err
			}
			result = &SettlementResponse{
				Transaction: ledgerTransactionToResponse(existing),
				Payable:     payableToResponse(payable, s.now()),
				Idempotent:  true,
			}
			return nil
		}
		if !shared.IsNotFound(err) {
			return err
		}

		payable, err := repos.Payables().FindByIDForUpdate(ctx, tenantID, payableID)
		if err != nil {
			return err
		}
		if !payable.Status.CanSettle() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot pay a payable in %s status", payable.Status))
		}

		account, err := repos.BankAccounts().FindByIDForTenant(ctx, tenantID, req.BankAccountID)
		if err != nil {
			return err
		}
		if !account.Active {
			return shared.NewDomainError("INVALID_STATE", "Bank account is deactivated")
		}

		settledAt := s.settledAt(req)
		tx, err := finance.NewSettlementTransaction(
			tenantID,
			account.ID,
			finance.DirectionExpense,
			valueobject.NewMoneyBRL(payable.Amount),
			payable.Description,
			payable.Category,
			settledAt,
			finance.ReferenceAccountPayable,
			payable.ID,
		)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Save(ctx, tx); err != nil {
			return err
		}

		if err := payable.MarkPaid(account.ID, settledAt); err != nil {
			return err
		}
		if err := repos.Payables().Save(ctx, payable); err != nil {
			return err
		}

		events = collectEvents(tx, payable)
		result = &SettlementResponse{
			Transaction: ledgerTransactionToResponse(tx),
			Payable:     payableToResponse(payable, s.now()),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	s.publish(ctx, events)
	telemetry.SetAttributes(ctx, map[string]any{telemetry.SpanAttrIdempotent: result.Idempotent})
	telemetry.SetOK(ctx)
	return result, nil
}

// SettleReceivable records the receipt of an account receivable into the
// given bank account. Idempotent in the same way as SettlePayable.
func (s *SettlementService) SettleReceivable(ctx context.Context, tenantID, receivableID uuid.UUID, req SettleRequest) (*SettlementResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SettlementService", "SettleReceivable")
	defer span.End()
	telemetry.SetAttributes(ctx, map[string]any{
		telemetry.SpanAttrTenantID:      tenantID,
		telemetry.SpanAttrReceivableID:  receivableID,
		telemetry.SpanAttrBankAccountID: req.BankAccountID,
	})

	var result *SettlementResponse
	var events []shared.DomainEvent

	err := s.scope.Execute(ctx, func(repos SettlementRepositories) error {
		existing, err := repos.Ledger().FindByReference(ctx, finance.ReferenceAccountReceivable, receivableID)
		if err == nil {
			receivable, err := repos.Receivables().FindByIDForTenant(ctx, tenantID, receivableID)
			if err != nil {
				return err
			}
			result = &SettlementResponse{
				Transaction: ledgerTransactionToResponse(existing),
				Receivable:  receivableToResponse(receivable, s.now()),
				Idempotent:  true,
			}
			return nil
		}
		if !shared.IsNotFound(err) {
			return err
		}

		receivable, err := repos.Receivables().FindByIDForUpdate(ctx, tenantID, receivableID)
		if err != nil {
			return err
		}
		if !receivable.Status.CanSettle() {
			return shared.NewDomainError("INVALID_STATE",
				fmt.Sprintf("Cannot receive a receivable in %s status", receivable.Status))
		}

		account, err := repos.BankAccounts().FindByIDForTenant(ctx, tenantID, req.BankAccountID)
		if err != nil {
			return err
		}
		if !account.Active {
			return shared.NewDomainError("INVALID_STATE", "Bank account is deactivated")
		}

		settledAt := s.settledAt(req)
		tx, err := finance.NewSettlementTransaction(
			tenantID,
			account.ID,
			finance.DirectionIncome,
			valueobject.NewMoneyBRL(receivable.Amount),
			receivable.Description,
			receivable.Category,
			settledAt,
			finance.ReferenceAccountReceivable,
			receivable.ID,
		)
		if err != nil {
			return err
		}
		if err := repos.Ledger().Save(ctx, tx); err != nil {
			return err
		}

		if err := receivable.MarkReceived(account.ID, settledAt); err != nil {
			return err
		}
		if err := repos.Receivables().Save(ctx, receivable); err != nil {
			return err
		}

		events = collectEvents(tx, receivable)
		result = &SettlementResponse{
			Transaction: ledgerTransactionToResponse(tx),
			Receivable:  receivableToResponse(receivable, s.now()),
		}
		return nil
	})
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	s.publish(ctx, events)
	telemetry.SetAttributes(ctx, map[string]any{telemetry.SpanAttrIdempotent: result.Idempotent})
	telemetry.SetOK(ctx)
	return result, nil
}

func (s *SettlementService) settledAt(req SettleRequest) time.Time {
	if req.SettledAt != nil {
		return *req.SettledAt
	}
	return s.now()
}

// publish emits domain events after the transaction has committed. Event
// delivery failures are deliberately not propagated to the caller: the
// settlement itself already succeeded.
func (s *SettlementService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	_ = s.events.Publish(ctx, events...)
}

// collectEvents drains pending domain events from the given aggregates.
func collectEvents(aggregates ...shared.AggregateRoot) []shared.DomainEvent {
	var events []shared.DomainEvent
	for _, a := range aggregates {
		events = append(events, a.GetDomainEvents()...)
		a.ClearDomainEvents()
	}
	return events
}
