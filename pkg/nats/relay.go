package nats

import (
	"context"

	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/pkg/events"
)

// Relay forwards domain events to the NATS stream. A Relay built without a publisher
// (NATS not configured or unreachable) silently drops events.
type Relay struct {
	publisher *Publisher
	logger    logger.ILogger
}

func NewRelay(publisher *Publisher, logger logger.ILogger) *Relay {
	return &Relay{
		publisher: publisher,
		logger:    logger,
	}
}

func (r *Relay) Enabled() bool {
	return r != nil && r.publisher != nil
}

// Forward publishes evt and logs failures. It never blocks the caller on an error.
func (r *Relay) Forward(ctx context.Context, evt events.Event) {
	if !r.Enabled() {
		return
	}

	if err := r.publisher.Publish(ctx, evt); err != nil {
		r.logger.Error("EVENTS", "Failed to relay event to NATS", map[string]interface{}{
			"type":  evt.EventType(),
			"error": err.Error(),
		})
	}
}
