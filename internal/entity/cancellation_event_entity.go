package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventCancellationCreated = "CANCELLATION_CREATED"
	EventCancellationUpdated = "CANCELLATION_UPDATED"
	EventDownsellAccepted    = "DOWNSELL_ACCEPTED"
)

// CancellationEvent is one row of the cancellation audit trail
type CancellationEvent struct {
	ID             uuid.UUID
	CancellationID uuid.UUID
	UserID         uuid.UUID
	Type           string
	Payload        map[string]interface{}
	OccurredAt     time.Time
}
