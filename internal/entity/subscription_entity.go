// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive              SubscriptionStatus = "active"
	SubscriptionStatusPendingCancellation SubscriptionStatus = "pending_cancellation"
	SubscriptionStatusCanceled            SubscriptionStatus = "canceled"
)

// Subscription is the slice of the billing subscription this flow reads and flags.
type Subscription struct {
	ID           string
	UserID       uuid.UUID
	Email        string
	MonthlyPrice int64 // cents
	Status       SubscriptionStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
