package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

// PayableService provides application-level account payable operations.
// Settlement is not here: paying a payable goes through SettlementService.
type PayableService struct {
	payableRepo finance.AccountPayableRepository
	events      shared.EventPublisher
	now         func() time.Time
}

// NewPayableService creates a new PayableService
func NewPayableService(payableRepo finance.AccountPayableRepository, events shared.EventPublisher) *PayableService {
	return &PayableService{
		payableRepo: payableRepo,
		events:      events,
		now:         time.Now,
	}
}

// Create creates a new pending account payable
func (s *PayableService) Create(ctx context.Context, tenantID uuid.UUID, req CreatePayableRequest) (*PayableResponse, error) {
	payable, err := finance.NewAccountPayable(
		tenantID,
		req.Description,
		valueobject.NewMoneyBRL(req.Amount),
		req.Category,
		finance.PayableSource(req.Source),
		req.DueDate,
		req.SupplierName,
	)
	if err != nil {
		return nil, err
	}

	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payable)
	return payableToResponse(payable, s.now()), nil
}

// Get returns a single payable with the derived overdue status applied
func (s *PayableService) Get(ctx context.Context, tenantID, id uuid.UUID) (*PayableResponse, error) {
	payable, err := s.payableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return payableToResponse(payable, s.now()), nil
}

// List returns payables matching the filter, with total count for paging.
// The derived overdue rule is applied per row at read time.
func (s *PayableService) List(ctx context.Context, tenantID uuid.UUID, filter ObligationListFilter) ([]PayableResponse, int64, error) {
	domainFilter := filter.toDomain()

	payables, err := s.payableRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.payableRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]PayableResponse, len(payables))
	for i := range payables {
		responses[i] = *payableToResponse(&payables[i], now)
	}
	return responses, total, nil
}

// Cancel cancels a pending or overdue payable
func (s *PayableService) Cancel(ctx context.Context, tenantID, id uuid.UUID, req CancelRequest) (*PayableResponse, error) {
	payable, err := s.payableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := payable.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.payableRepo.Save(ctx, payable); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, payable)
	return payableToResponse(payable, s.now()), nil
}

func (s *PayableService) publishEvents(ctx context.Context, payable *finance.AccountPayable) {
	if s.events == nil {
		return
	}
	events := payable.GetDomainEvents()
	payable.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.events.Publish(ctx, events...)
	}
}
