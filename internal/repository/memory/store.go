// Package memory is a development stand-in for the record store. Cancellation records expire
// after a configurable TTL so demo sessions start clean; subscriptions never expire.
package memory

import (
	"context"
	"sync"
	"time"

	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/unitofwork"

	"github.com/patrickmn/go-cache"
)

const (
	cancellationPrefix = "cancellation:"
	userIndexPrefix    = "user:"
	eventsPrefix       = "events:"
)

// Store holds all in-memory state shared by the units of work it hands out.
type Store struct {
	mu            sync.Mutex
	records       *cache.Cache
	subscriptions *cache.Cache
}

// NewStore creates a store whose cancellation records live for ttl. A ttl <= 0 keeps them forever.
func NewStore(ttl time.Duration) *Store {
	expiration := ttl
	cleanup := ttl
	if ttl <= 0 {
		expiration = cache.NoExpiration
		cleanup = 0
	}
	return &Store{
		records:       cache.New(expiration, cleanup),
		subscriptions: cache.New(cache.NoExpiration, 0),
	}
}

// Flush drops every cancellation record and event.
func (s *Store) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records.Flush()
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
	return &cancellationRepository{store: u.store}
}

func (u *unitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &subscriptionRepository{store: u.store}
}

func (u *unitOfWork) CancellationEventRepository() contract.CancellationEventRepository {
	return &eventRepository{store: u.store}
}
