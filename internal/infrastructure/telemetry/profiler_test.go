package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finflow/backend/internal/infrastructure/config"
)

func TestNewProfilerDisabled(t *testing.T) {
	p, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: false}, "finflow-backend", zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.False(t, p.IsEnabled())

	// Stop is idempotent on a no-op profiler.
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfilerMissingServer(t *testing.T) {
	_, err := NewProfiler(config.TelemetryConfig{ProfilingEnabled: true}, "finflow-backend", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server address")
}
