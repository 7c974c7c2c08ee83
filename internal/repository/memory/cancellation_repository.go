package memory

import (
	"context"
	"time"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type cancellationRepository struct {
	store *Store
}

func copyCancellation(c entity.Cancellation) *entity.Cancellation {
	if c.Reason != nil {
		reason := *c.Reason
		c.Reason = &reason
	}
	return &c
}

func (r *cancellationRepository) get(id uuid.UUID) (entity.Cancellation, bool) {
	x, found := r.store.records.Get(cancellationPrefix + id.String())
	if !found {
		return entity.Cancellation{}, false
	}
	return x.(entity.Cancellation), true
}

func (r *cancellationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Cancellation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	c, found := r.get(id)
	if !found {
		return nil, nil
	}
	return copyCancellation(c), nil
}

func (r *cancellationRepository) FindByUserID(ctx context.Context, userId uuid.UUID) (*entity.Cancellation, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return r.findByUserLocked(userId), nil
}

func (r *cancellationRepository) findByUserLocked(userId uuid.UUID) *entity.Cancellation {
	x, found := r.store.records.Get(userIndexPrefix + userId.String())
	if !found {
		return nil
	}
	c, found := r.get(x.(uuid.UUID))
	if !found {
		return nil
	}
	return copyCancellation(c)
}

func (r *cancellationRepository) CreateIfAbsent(ctx context.Context, c *entity.Cancellation) (*entity.Cancellation, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing := r.findByUserLocked(c.UserID); existing != nil {
		return existing, false, nil
	}

	stored := *copyCancellation(*c)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	now := time.Now()
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.store.records.Set(cancellationPrefix+stored.ID.String(), stored, cache.DefaultExpiration)
	r.store.records.Set(userIndexPrefix+stored.UserID.String(), stored.ID, cache.DefaultExpiration)

	return copyCancellation(stored), true, nil
}

// Update keeps the record's remaining lifetime; go-cache has no way to rewrite a value without
// resetting expiry, so the original expiration time is carried over explicitly.
func (r *cancellationRepository) Update(ctx context.Context, id uuid.UUID, patch entity.CancellationPatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := cancellationPrefix + id.String()
	x, expiresAt, found := r.store.records.GetWithExpiration(key)
	if !found {
		return nil
	}

	c := *copyCancellation(x.(entity.Cancellation))
	patch.Apply(&c)
	c.UpdatedAt = time.Now()

	r.store.records.Set(key, c, remaining(expiresAt))
	return nil
}

func remaining(expiresAt time.Time) time.Duration {
	if expiresAt.IsZero() {
		return cache.NoExpiration
	}
	d := time.Until(expiresAt)
	if d <= 0 {
		// expired between the read and the write; keep it for a moment rather than forever
		return time.Millisecond
	}
	return d
}
