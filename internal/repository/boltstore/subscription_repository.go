package boltstore

import (
	"context"
	"time"

	"cancelflow-be/internal/entity"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
)

type subscriptionRepository struct {
	db *bolt.DB
}

func (r *subscriptionRepository) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	var latest *entity.Subscription

	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSubscriptions).ForEach(func(k, v []byte) error {
			var s entity.Subscription
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			if s.UserID == userId && (latest == nil || s.CreatedAt.After(latest.CreatedAt)) {
				latest = &s
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return latest, nil
}

func (r *subscriptionRepository) Save(ctx context.Context, subscription *entity.Subscription) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSubscriptions)

		s := *subscription
		now := time.Now().UTC()
		if s.CreatedAt.IsZero() {
			if existing := b.Get([]byte(s.ID)); existing != nil {
				var prev entity.Subscription
				if err := json.Unmarshal(existing, &prev); err == nil {
					s.CreatedAt = prev.CreatedAt
				}
			}
			if s.CreatedAt.IsZero() {
				s.CreatedAt = now
			}
		}
		s.UpdatedAt = now

		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		return b.Put([]byte(s.ID), data)
	})
}

func (r *subscriptionRepository) UpdateStatusByUserID(ctx context.Context, userId uuid.UUID, from []entity.SubscriptionStatus, status entity.SubscriptionStatus) (int64, error) {
	var changed int64

	err := r.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSubscriptions)

		updates := map[string][]byte{}
		err := b.ForEach(func(k, v []byte) error {
			var s entity.Subscription
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			if s.UserID != userId || !hasStatus(from, s.Status) {
				return nil
			}
			s.Status = status
			s.UpdatedAt = time.Now().UTC()
			data, err := json.Marshal(s)
			if err != nil {
				return err
			}
			updates[string(k)] = data
			return nil
		})
		if err != nil {
			return err
		}

		// bolt forbids mutating a bucket while iterating it
		for k, data := range updates {
			if err := b.Put([]byte(k), data); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	return changed, err
}

func hasStatus(statuses []entity.SubscriptionStatus, status entity.SubscriptionStatus) bool {
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}
