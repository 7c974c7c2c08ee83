package contract

import (
	"context"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	Save(ctx context.Context, subscription *entity.Subscription) error
	// UpdateStatusByUserID moves the user's subscriptions currently in one of from to status
	// and reports how many were changed.
	UpdateStatusByUserID(ctx context.Context, userId uuid.UUID, from []entity.SubscriptionStatus, status entity.SubscriptionStatus) (int64, error)
}
