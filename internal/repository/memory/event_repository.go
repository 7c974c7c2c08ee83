package memory

import (
	"context"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type eventRepository struct {
	store *Store
}

func (r *eventRepository) Create(ctx context.Context, event *entity.CancellationEvent) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}

	key := eventsPrefix + event.CancellationID.String()
	var events []entity.CancellationEvent
	if x, found := r.store.records.Get(key); found {
		events = x.([]entity.CancellationEvent)
	}
	events = append(append([]entity.CancellationEvent(nil), events...), *event)
	r.store.records.Set(key, events, cache.DefaultExpiration)
	return nil
}

func (r *eventRepository) FindAllByCancellationID(ctx context.Context, cancellationId uuid.UUID) ([]*entity.CancellationEvent, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	x, found := r.store.records.Get(eventsPrefix + cancellationId.String())
	if !found {
		return []*entity.CancellationEvent{}, nil
	}

	stored := x.([]entity.CancellationEvent)
	events := make([]*entity.CancellationEvent, 0, len(stored))
	for i := range stored {
		e := stored[i]
		events = append(events, &e)
	}
	return events, nil
}
