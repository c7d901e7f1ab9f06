package telemetry

import (
	"context"
	"maps"
	"sort"
	"strings"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys. Labels slice profiling data in the Pyroscope UI;
// keys must stay low-cardinality.
const (
	ProfilingLabelHandler   = "handler"
	ProfilingLabelRoute     = "route"
	ProfilingLabelMethod    = "method"
	ProfilingLabelTenantID  = "tenant_id"
	ProfilingLabelOperation = "operation"
	ProfilingLabelRegion    = "region"
)

// maxLabelValueLength caps label values to keep Pyroscope memory bounded.
const maxLabelValueLength = 128

// highCardinalityLabels are label keys that would explode profile series
// cardinality. sanitizeLabels silently drops them.
//
// tenant_id is intentionally allowed: tenant counts are low enough that
// per-tenant flamegraphs are worth the series.
var highCardinalityLabels = map[string]bool{
	"user_id":        true,
	"request_id":     true,
	"trace_id":       true,
	"span_id":        true,
	"payable_id":     true,
	"receivable_id":  true,
	"transaction_id": true,
}

// WithProfilingLabels runs fn with the given profiling labels attached.
// Labels are sanitized first; if none survive, fn runs unlabeled. The map is
// copied, so callers may reuse it after the call.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// OperationLabels builds labels for a named application-layer operation.
func OperationLabels(operation, tenantID string) map[string]string {
	labels := map[string]string{ProfilingLabelOperation: operation}
	if tenantID != "" {
		labels[ProfilingLabelTenantID] = tenantID
	}
	return labels
}

// HTTPRequestLabels builds the standard label set for HTTP handler profiling.
func HTTPRequestLabels(handler, route, method string) map[string]string {
	labels := make(map[string]string, 3)
	if handler != "" {
		labels[ProfilingLabelHandler] = handler
	}
	if route != "" {
		labels[ProfilingLabelRoute] = route
	}
	if method != "" {
		labels[ProfilingLabelMethod] = method
	}
	return labels
}

// RegionLabels builds labels for a code region such as "db_query" or
// "ledger_insert", merged with any extra labels.
func RegionLabels(region string, extra map[string]string) map[string]string {
	labels := make(map[string]string, len(extra)+1)
	maps.Copy(labels, extra)
	labels[ProfilingLabelRegion] = region
	return labels
}

// sanitizeLabels validates labels and flattens them into the key/value slice
// pyroscope.Labels expects: high-cardinality and empty entries are dropped,
// long values truncated, keys normalized to snake_case, output sorted for
// determinism.
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}

	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(labels)*2)
	for _, key := range keys {
		value := labels[key]
		if key == "" || value == "" || highCardinalityLabels[key] {
			continue
		}
		if len(value) > maxLabelValueLength {
			value = value[:maxLabelValueLength]
		}
		sanitized := sanitizeLabelKey(key)
		if sanitized == "" {
			continue
		}
		pairs = append(pairs, sanitized, value)
	}
	return pairs
}

// sanitizeLabelKey normalizes a key to lowercase snake_case, stripping any
// character outside [a-z0-9_].
func sanitizeLabelKey(key string) string {
	key = strings.ToLower(key)
	key = strings.ReplaceAll(key, " ", "_")
	key = strings.ReplaceAll(key, "-", "_")

	out := make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			out = append(out, c)
		}
	}
	return string(out)
}
