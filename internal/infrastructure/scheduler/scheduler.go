// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/finflow/backend/internal/infrastructure/config"
)

// Job is a named unit of periodic work.
type Job interface {
	// Name identifies the job in logs
	Name() string
	// Run executes one iteration. The context carries the job timeout.
	Run(ctx context.Context) error
}

// Scheduler runs registered jobs on fixed intervals until stopped. Each job
// gets its own ticker goroutine; a slow iteration delays only its own job.
type Scheduler struct {
	cfg    config.SchedulerConfig
	logger *zap.Logger

	mu        sync.Mutex
	jobs      []scheduledJob
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

type scheduledJob struct {
	job      Job
	interval time.Duration
}

// NewScheduler creates a new Scheduler
func NewScheduler(cfg config.SchedulerConfig, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		logger: logger,
	}
}

// Register adds a job to run at the given interval. Must be called before
// Start.
func (s *Scheduler) Register(job Job, interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, scheduledJob{job: job, interval: interval})
}

// Start launches the job loops. A disabled scheduler starts nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.Enabled {
		s.logger.Info("scheduler disabled, background jobs will not run")
		return nil
	}
	s.isRunning = true

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, sj := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, sj)
	}

	s.logger.Info("scheduler started", zap.Int("jobs", len(s.jobs)))
	return nil
}

// Stop cancels the job loops and waits for in-flight iterations, bounded by
// ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, sj scheduledJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(sj.interval)
	defer ticker.Stop()

	// First run happens immediately, not one interval in.
	s.runOnce(ctx, sj.job)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, sj.job)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, job Job) {
	if ctx.Err() != nil {
		return
	}

	jobCtx := ctx
	var cancel context.CancelFunc
	if s.cfg.JobTimeout > 0 {
		jobCtx, cancel = context.WithTimeout(ctx, s.cfg.JobTimeout)
		defer cancel()
	}

	start := time.Now()
	if err := job.Run(jobCtx); err != nil {
		s.logger.Error("job failed",
			zap.String("job", job.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return
	}
	s.logger.Debug("job completed",
		zap.String("job", job.Name()),
		zap.Duration("elapsed", time.Since(start)))
}
