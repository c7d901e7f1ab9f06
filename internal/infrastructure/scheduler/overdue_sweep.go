package scheduler

import (
	"context"

	appfinance "github.com/finflow/backend/internal/application/finance"
)

// OverdueSweepJob periodically materializes the derived overdue status on
// pending obligations whose due date has passed.
type OverdueSweepJob struct {
	service   *appfinance.OverdueService
	batchSize int
}

// NewOverdueSweepJob creates a new OverdueSweepJob
func NewOverdueSweepJob(service *appfinance.OverdueService, batchSize int) *OverdueSweepJob {
	if batchSize < 1 {
		batchSize = 500
	}
	return &OverdueSweepJob{service: service, batchSize: batchSize}
}

// Name identifies the job in logs
func (j *OverdueSweepJob) Name() string {
	return "overdue_sweep"
}

// Run executes one sweep iteration
func (j *OverdueSweepJob) Run(ctx context.Context) error {
	_, err := j.service.Sweep(ctx, j.batchSize)
	return err
}
