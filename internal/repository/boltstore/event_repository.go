package boltstore

import (
	"context"
	"encoding/binary"

	"cancelflow-be/internal/entity"

	bolt "github.com/boltdb/bolt"
	"github.com/google/uuid"
)

type eventRepository struct {
	db *bolt.DB
}

// Events live in a nested bucket per cancellation, keyed by the bucket sequence so that
// cursor order is insertion order.
func (r *eventRepository) Create(ctx context.Context, event *entity.CancellationEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	return r.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.Bucket(bucketEvents).CreateBucketIfNotExists([]byte(event.CancellationID.String()))
		if err != nil {
			return err
		}

		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		data, err := json.Marshal(event)
		if err != nil {
			return err
		}
		return b.Put(key, data)
	})
}

func (r *eventRepository) FindAllByCancellationID(ctx context.Context, cancellationId uuid.UUID) ([]*entity.CancellationEvent, error) {
	events := []*entity.CancellationEvent{}

	err := r.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketEvents).Bucket([]byte(cancellationId.String()))
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			var e entity.CancellationEvent
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			events = append(events, &e)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
