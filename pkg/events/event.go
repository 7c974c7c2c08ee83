package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "CANCELLATION_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewCancellationEvent builds an event about one cancellation record. The ids are always
// part of the payload so consumers can route without decoding anything else.
func NewCancellationEvent(eventType, cancellationId, userId string, data map[string]interface{}, at time.Time) BaseEvent {
	payload := make(map[string]interface{}, len(data)+3)
	for k, v := range data {
		payload[k] = v
	}
	payload["cancellation_id"] = cancellationId
	payload["user_id"] = userId
	payload["entity_type"] = "cancellation"

	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: at,
	}
}
