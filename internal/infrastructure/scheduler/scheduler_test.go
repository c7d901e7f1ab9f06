package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finflow/backend/internal/infrastructure/config"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Name() string { return "counting" }

func (j *countingJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func TestSchedulerRunsJobs(t *testing.T) {
	cfg := config.SchedulerConfig{Enabled: true, JobTimeout: time.Second}
	s := NewScheduler(cfg, zaptest.NewLogger(t))

	job := &countingJob{}
	s.Register(job, 10*time.Millisecond)

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	// Immediate first run plus several ticks.
	assert.GreaterOrEqual(t, job.runs.Load(), int32(3))
}

func TestSchedulerDisabled(t *testing.T) {
	cfg := config.SchedulerConfig{Enabled: false}
	s := NewScheduler(cfg, zaptest.NewLogger(t))

	job := &countingJob{}
	s.Register(job, time.Millisecond)

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	assert.Zero(t, job.runs.Load())
}

func TestSchedulerKeepsRunningAfterJobError(t *testing.T) {
	cfg := config.SchedulerConfig{Enabled: true}
	s := NewScheduler(cfg, zaptest.NewLogger(t))

	job := &countingJob{err: assert.AnError}
	s.Register(job, 10*time.Millisecond)

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(45 * time.Millisecond)
	require.NoError(t, s.Stop(context.Background()))

	assert.GreaterOrEqual(t, job.runs.Load(), int32(2))
}
