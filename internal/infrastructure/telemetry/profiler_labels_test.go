package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeLabels(t *testing.T) {
	t.Run("drops high cardinality keys", func(t *testing.T) {
		pairs := sanitizeLabels(map[string]string{
			"tenant_id":  "t-1",
			"payable_id": "p-1",
			"request_id": "r-1",
		})
		assert.Equal(t, []string{"tenant_id", "t-1"}, pairs)
	})

	t.Run("drops empty keys and values", func(t *testing.T) {
		pairs := sanitizeLabels(map[string]string{
			"":          "value",
			"operation": "",
			"region":    "db_query",
		})
		assert.Equal(t, []string{"region", "db_query"}, pairs)
	})

	t.Run("truncates long values", func(t *testing.T) {
		pairs := sanitizeLabels(map[string]string{
			"operation": strings.Repeat("x", 300),
		})
		assert.Len(t, pairs, 2)
		assert.Len(t, pairs[1], maxLabelValueLength)
	})

	t.Run("normalizes keys", func(t *testing.T) {
		pairs := sanitizeLabels(map[string]string{
			"My Label-Key": "v",
		})
		assert.Equal(t, []string{"my_label_key", "v"}, pairs)
	})

	t.Run("sorted output", func(t *testing.T) {
		pairs := sanitizeLabels(map[string]string{
			"route":   "/payables",
			"handler": "PayableHandler",
			"method":  "POST",
		})
		assert.Equal(t, []string{"handler", "PayableHandler", "method", "POST", "route", "/payables"}, pairs)
	})
}

func TestWithProfilingLabels(t *testing.T) {
	t.Run("runs fn with labels", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), map[string]string{"operation": "SettlePayable"}, func(ctx context.Context) {
			called = true
			assert.NotNil(t, ctx)
		})
		assert.True(t, called)
	})

	t.Run("runs fn without labels", func(t *testing.T) {
		called := false
		WithProfilingLabels(context.Background(), nil, func(ctx context.Context) {
			called = true
		})
		assert.True(t, called)
	})
}

func TestLabelBuilders(t *testing.T) {
	assert.Equal(t, map[string]string{
		"operation": "SettlePayable",
		"tenant_id": "t-1",
	}, OperationLabels("SettlePayable", "t-1"))

	assert.Equal(t, map[string]string{
		"operation": "ResolveTenant",
	}, OperationLabels("ResolveTenant", ""))

	assert.Equal(t, map[string]string{
		"handler": "PayableHandler",
		"route":   "/payables/:id/pay",
		"method":  "POST",
	}, HTTPRequestLabels("PayableHandler", "/payables/:id/pay", "POST"))

	assert.Equal(t, map[string]string{
		"region":    "ledger_insert",
		"operation": "SettlePayable",
	}, RegionLabels("ledger_insert", map[string]string{"operation": "SettlePayable"}))
}
