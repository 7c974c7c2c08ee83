package memory

import (
	"context"
	"time"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type subscriptionRepository struct {
	store *Store
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var latest *entity.Subscription
	for _, item := range r.store.subscriptions.Items() {
		s := item.Object.(entity.Subscription)
		if s.UserID != userId {
			continue
		}
		if latest == nil || s.CreatedAt.After(latest.CreatedAt) {
			copied := s
			latest = &copied
		}
	}
	return latest, nil
}

func (r *subscriptionRepository) Save(ctx context.Context, subscription *entity.Subscription) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	s := *subscription
	now := time.Now()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
	r.store.subscriptions.Set(s.ID, s, cache.NoExpiration)
	return nil
}

func (r *subscriptionRepository) UpdateStatusByUserID(ctx context.Context, userId uuid.UUID, from []entity.SubscriptionStatus, status entity.SubscriptionStatus) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var changed int64
	for key, item := range r.store.subscriptions.Items() {
		s := item.Object.(entity.Subscription)
		if s.UserID != userId || !containsStatus(from, s.Status) {
			continue
		}
		s.Status = status
		s.UpdatedAt = time.Now()
		r.store.subscriptions.Set(key, s, cache.NoExpiration)
		changed++
	}
	return changed, nil
}

func containsStatus(statuses []entity.SubscriptionStatus, status entity.SubscriptionStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
