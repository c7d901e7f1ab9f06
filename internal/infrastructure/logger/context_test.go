package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return zap.New(core), logs
}

func TestWithContext(t *testing.T) {
	log := zap.NewNop()
	ctx := WithContext(context.Background(), log)
	assert.Same(t, log, FromContext(ctx))
}

func TestFromContextReturnsNopWhenMissing(t *testing.T) {
	log := FromContext(context.Background())
	require.NotNil(t, log)
	// Should not panic
	log.Info("ignored")
}

func TestContextEnrichment(t *testing.T) {
	t.Run("request id", func(t *testing.T) {
		log, logs := newObservedLogger()
		ctx, enriched := WithRequestID(context.Background(), log, "req-123")

		enriched.Info("with request id")
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-123", logs.All()[0].ContextMap()["request_id"])
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("tenant id", func(t *testing.T) {
		log, _ := newObservedLogger()
		ctx, _ := WithTenantID(context.Background(), log, "tenant-1")
		assert.Equal(t, "tenant-1", GetTenantID(ctx))
	})

	t.Run("user id", func(t *testing.T) {
		log, _ := newObservedLogger()
		ctx, _ := WithUserID(context.Background(), log, "user-1")
		assert.Equal(t, "user-1", GetUserID(ctx))
	})

	t.Run("getters return empty when absent", func(t *testing.T) {
		ctx := context.Background()
		assert.Empty(t, GetRequestID(ctx))
		assert.Empty(t, GetTenantID(ctx))
		assert.Empty(t, GetUserID(ctx))
	})
}

func TestContextLogger(t *testing.T) {
	t.Run("L injects context fields", func(t *testing.T) {
		log, logs := newObservedLogger()
		ctx := WithContext(context.Background(), log)
		ctx, _ = WithTenantID(ctx, log, "tenant-9")
		ctx, _ = WithUserID(ctx, log, "user-9")

		L(ctx).Info("settled")

		require.Equal(t, 1, logs.Len())
		fields := logs.All()[0].ContextMap()
		assert.Equal(t, "tenant-9", fields["tenant_id"])
		assert.Equal(t, "user-9", fields["user_id"])
	})

	t.Run("WithLogger uses provided logger", func(t *testing.T) {
		log, logs := newObservedLogger()

		WithLogger(context.Background(), log).Warn("careful")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "careful", logs.All()[0].Message)
	})

	t.Run("With adds fields to children", func(t *testing.T) {
		log, logs := newObservedLogger()

		WithLogger(context.Background(), log).
			With(zap.String("component", "settlement")).
			Error("boom")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "settlement", logs.All()[0].ContextMap()["component"])
	})

	t.Run("nil logger does not panic", func(t *testing.T) {
		cl := &ContextLogger{ctx: context.Background()}
		cl.Info("ignored")
		cl.Debug("ignored")
	})
}
