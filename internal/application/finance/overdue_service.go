package finance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/finflow/backend/internal/domain/finance"
)

// OverdueService materializes the derived overdue status. The read paths
// already present pending-past-due obligations as overdue; the sweep only
// persists that presentation so reports and exports see it too. Settlement
// never depends on the sweep having run.
type OverdueService struct {
	payableRepo    finance.AccountPayableRepository
	receivableRepo finance.AccountReceivableRepository
	logger         *zap.Logger
	now            func() time.Time
}

// NewOverdueService creates a new OverdueService
func NewOverdueService(
	payableRepo finance.AccountPayableRepository,
	receivableRepo finance.AccountReceivableRepository,
	logger *zap.Logger,
) *OverdueService {
	return &OverdueService{
		payableRepo:    payableRepo,
		receivableRepo: receivableRepo,
		logger:         logger,
		now:            time.Now,
	}
}

// SweepResult reports how many obligations one sweep marked overdue.
type SweepResult struct {
	PayablesMarked    int `json:"payables_marked"`
	ReceivablesMarked int `json:"receivables_marked"`
}

// Sweep marks pending obligations past due as overdue, up to batchSize of
// each kind. An obligation is past due when its due date is strictly before
// the start of the current UTC day.
func (s *OverdueService) Sweep(ctx context.Context, batchSize int) (SweepResult, error) {
	now := s.now()
	cutoff := finance.StartOfDayUTC(now)
	result := SweepResult{}

	payables, err := s.payableRepo.FindPendingDueBefore(ctx, cutoff, batchSize)
	if err != nil {
		return result, err
	}
	for i := range payables {
		payable := &payables[i]
		if err := payable.MarkOverdue(now); err != nil {
			// Raced with a settlement; skip and move on.
			continue
		}
		if err := s.payableRepo.Save(ctx, payable); err != nil {
			s.logger.Warn("failed to persist overdue payable",
				zap.String("payable_id", payable.ID.String()),
				zap.Error(err))
			continue
		}
		result.PayablesMarked++
	}

	receivables, err := s.receivableRepo.FindPendingDueBefore(ctx, cutoff, batchSize)
	if err != nil {
		return result, err
	}
	for i := range receivables {
		receivable := &receivables[i]
		if err := receivable.MarkOverdue(now); err != nil {
			continue
		}
		if err := s.receivableRepo.Save(ctx, receivable); err != nil {
			s.logger.Warn("failed to persist overdue receivable",
				zap.String("receivable_id", receivable.ID.String()),
				zap.Error(err))
			continue
		}
		result.ReceivablesMarked++
	}

	if result.PayablesMarked > 0 || result.ReceivablesMarked > 0 {
		s.logger.Info("overdue sweep completed",
			zap.Int("payables_marked", result.PayablesMarked),
			zap.Int("receivables_marked", result.ReceivablesMarked))
	}
	return result, nil
}
