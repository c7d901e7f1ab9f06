package finance

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/finflow/backend/internal/domain/finance"
	"github.com/finflow/backend/internal/domain/shared"
	"github.com/finflow/backend/internal/domain/shared/valueobject"
)

// ReceivableService provides application-level account receivable
// operations. Settlement goes through SettlementService.
type ReceivableService struct {
	receivableRepo finance.AccountReceivableRepository
	events         shared.EventPublisher
	now            func() time.Time
}

// NewReceivableService creates a new ReceivableService
func NewReceivableService(receivableRepo finance.AccountReceivableRepository, events shared.EventPublisher) *ReceivableService {
	return &ReceivableService{
		receivableRepo: receivableRepo,
		events:         events,
		now:            time.Now,
	}
}

// Create creates a new pending account receivable
func (s *ReceivableService) Create(ctx context.Context, tenantID uuid.UUID, req CreateReceivableRequest) (*ReceivableResponse, error) {
	receivable, err := finance.NewAccountReceivable(
		tenantID,
		req.Description,
		valueobject.NewMoneyBRL(req.Amount),
		req.Category,
		finance.ReceivableSource(req.Source),
		req.DueDate,
		req.PayerName,
	)
	if err != nil {
		return nil, err
	}

	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, receivable)
	return receivableToResponse(receivable, s.now()), nil
}

// Get returns a single receivable with the derived overdue status applied
func (s *ReceivableService) Get(ctx context.Context, tenantID, id uuid.UUID) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	return receivableToResponse(receivable, s.now()), nil
}

// List returns receivables matching the filter, with total count for paging
func (s *ReceivableService) List(ctx context.Context, tenantID uuid.UUID, filter ObligationListFilter) ([]ReceivableResponse, int64, error) {
	domainFilter := filter.toDomain()

	receivables, err := s.receivableRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receivableRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	responses := make([]ReceivableResponse, len(receivables))
	for i := range receivables {
		responses[i] = *receivableToResponse(&receivables[i], now)
	}
	return responses, total, nil
}

// Cancel cancels a pending or overdue receivable
func (s *ReceivableService) Cancel(ctx context.Context, tenantID, id uuid.UUID, req CancelRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := receivable.Cancel(req.Reason); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, receivable)
	return receivableToResponse(receivable, s.now()), nil
}

func (s *ReceivableService) publishEvents(ctx context.Context, receivable *finance.AccountReceivable) {
	if s.events == nil {
		return
	}
	events := receivable.GetDomainEvents()
	receivable.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.events.Publish(ctx, events...)
	}
}
