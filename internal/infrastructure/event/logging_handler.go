package event

import (
	"context"

	"go.uber.org/zap"

	"github.com/finflow/backend/internal/domain/shared"
)

// LoggingEventHandler records every published domain event in the structured
// log. It subscribes as a wildcard handler and serves as the audit trail for
// settlement and obligation lifecycle changes.
type LoggingEventHandler struct {
	logger *zap.Logger
}

// NewLoggingEventHandler creates a new LoggingEventHandler
func NewLoggingEventHandler(logger *zap.Logger) *LoggingEventHandler {
	return &LoggingEventHandler{logger: logger}
}

// Handle logs the event
func (h *LoggingEventHandler) Handle(_ context.Context, evt shared.DomainEvent) error {
	h.logger.Info("domain event",
		zap.String("event_type", evt.EventType()),
		zap.String("event_id", evt.EventID().String()),
		zap.String("aggregate_type", evt.AggregateType()),
		zap.String("aggregate_id", evt.AggregateID().String()),
		zap.String("tenant_id", evt.TenantID().String()),
		zap.Time("occurred_at", evt.OccurredAt()))
	return nil
}

// EventTypes returns an empty slice so the handler receives all events
func (h *LoggingEventHandler) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*LoggingEventHandler)(nil)
