// FILE: internal/entity/cancellation_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DownsellVariant is the A/B bucket a user is placed in when starting a cancellation
type DownsellVariant string

const (
	DownsellVariantA DownsellVariant = "A" // straight to reason collection
	DownsellVariantB DownsellVariant = "B" // $10 off offer first
)

func (v DownsellVariant) Valid() bool {
	return v == DownsellVariantA || v == DownsellVariantB
}

// Cancellation represents a user's cancellation attempt. DownsellVariant is fixed at creation.
type Cancellation struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	SubscriptionID   string
	DownsellVariant  DownsellVariant
	Reason           *string
	AcceptedDownsell bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CancellationPatch holds the fields of a partial update; nil means "leave untouched".
type CancellationPatch struct {
	Reason           *string
	AcceptedDownsell *bool
}

func (p CancellationPatch) IsEmpty() bool {
	return p.Reason == nil && p.AcceptedDownsell == nil
}

// Apply copies the present fields onto c.
func (p CancellationPatch) Apply(c *Cancellation) {
	if p.Reason != nil {
		reason := *p.Reason
		c.Reason = &reason
	}
	if p.AcceptedDownsell != nil {
		c.AcceptedDownsell = *p.AcceptedDownsell
	}
}
