package boltstore

import (
	"context"
	"time"

	"cancelflow-be/internal/entity"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
)

type cancellationRepository struct {
	db *bolt.DB
}

func getCancellation(tx *bolt.Tx, id []byte) (*entity.Cancellation, error) {
	v := tx.Bucket(bucketCancellations).Get(id)
	if v == nil {
		return nil, nil
	}
	var c entity.Cancellation
	if err := json.Unmarshal(v, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func putCancellation(tx *bolt.Tx, c *entity.Cancellation) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return tx.Bucket(bucketCancellations).Put([]byte(c.ID.String()), data)
}

func (r *cancellationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cancellation, error) {
	var result *entity.Cancellation
	err := r.db.View(func(tx *bolt.Tx) error {
		c, err := getCancellation(tx, []byte(id.String()))
		result = c
		return err
	})
	return result, err
}

func (r *cancellationRepository) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Cancellation, error) {
	var result *entity.Cancellation
	err := r.db.View(func(tx *bolt.Tx) error {
		id := tx.Bucket(bucketUserIndex).Get([]byte(userId.String()))
		if id == nil {
			return nil
		}
		c, err := getCancellation(tx, id)
		result = c
		return err
	})
	return result, err
}

func (r *cancellationRepository) CreateIfAbsent(ctx context.Context, c *entity.Cancellation) (*entity.Cancellation, bool, error) {
	var result *entity.Cancellation
	created := false

	err := r.db.Update(func(tx *bolt.Tx) error {
		index := tx.Bucket(bucketUserIndex)
		userKey := []byte(c.UserID.String())

		if id := index.Get(userKey); id != nil {
			existing, err := getCancellation(tx, id)
			if err != nil {
				return err
			}
			if existing != nil {
				result = existing
				return nil
			}
		}

		stored := *c
		if stored.ID == uuid.Nil {
			stored.ID = uuid.New()
		}
		now := time.Now().UTC()
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
		stored.UpdatedAt = now

		if err := putCancellation(tx, &stored); err != nil {
			return err
		}
		if err := index.Put(userKey, []byte(stored.ID.String())); err != nil {
			return err
		}

		result = &stored
		created = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return result, created, nil
}

func (r *cancellationRepository) Update(ctx context.Context, id uuid.UUID, patch entity.CancellationPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		c, err := getCancellation(tx, []byte(id.String()))
		if err != nil || c == nil {
			return err
		}

		patch.Apply(c)
		c.UpdatedAt = time.Now().UTC()
		return putCancellation(tx, c)
	})
}
