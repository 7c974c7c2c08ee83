// Package boltstore keeps cancellation state in a single BoltDB file. It needs no database
// server, which suits single-node deployments and local demos that should survive a restart.
//
// Every repository call runs in its own bolt transaction. CreateIfAbsent does its
// lookup and insert inside one read-write transaction, so the one-record-per-user rule holds
// even under concurrent requests (bolt serialises writers).
package boltstore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/unitofwork"

	bolt "github.com/boltdb/bolt"
	jsoniter "github.com/json-iterator/go"
)

var (
	bucketCancellations = []byte("cancellations")
	bucketUserIndex     = []byte("cancellations_by_user")
	bucketSubscriptions = []byte("subscriptions")
	bucketEvents        = []byte("cancellation_events")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Store wraps a BoltDB database.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the database at path and ensures all buckets exist.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketCancellations, bucketUserIndex, bucketSubscriptions, bucketEvents} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close releases the database file lock.
func (s *Store) Close() error {
	return s.db.Close()
}

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{store: f.store}
}

type unitOfWork struct {
	store *Store
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) CancellationRepository() contract.CancellationRepository {
	return &cancellationRepository{db: u.store.db}
}

func (u *unitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &subscriptionRepository{db: u.store.db}
}

func (u *unitOfWork) CancellationEventRepository() contract.CancellationEventRepository {
	return &eventRepository{db: u.store.db}
}
