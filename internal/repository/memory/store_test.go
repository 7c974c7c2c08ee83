package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"cancelflow-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCancellation(userId uuid.UUID) *entity.Cancellation {
	return &entity.Cancellation{
		UserID:          userId,
		SubscriptionID:  "sub_001",
		DownsellVariant: entity.DownsellVariantA,
	}
}

func TestCancellationRepository_CreateIfAbsent(t *testing.T) {
	ctx := context.Background()
	uow := NewRepositoryFactory(NewStore(time.Minute)).NewUnitOfWork(ctx)
	repo := uow.CancellationRepository()
	userId := uuid.New()

	first, created, err := repo.CreateIfAbsent(ctx, newCancellation(userId))
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	again := newCancellation(userId)
	again.DownsellVariant = entity.DownsellVariantB
	second, created, err := repo.CreateIfAbsent(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.DownsellVariantA, second.DownsellVariant)
}

func TestCancellationRepository_ConcurrentCreateKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore(time.Minute))
	userId := uuid.New()

	var wg sync.WaitGroup
	ids := make(chan uuid.UUID, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, _, err := factory.NewUnitOfWork(ctx).CancellationRepository().CreateIfAbsent(ctx, newCancellation(userId))
			if err == nil {
				ids <- c.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[uuid.UUID]bool{}
	for id := range ids {
		seen[id] = true
	}
	assert.Len(t, seen, 1)
}

func TestCancellationRepository_UpdateIsPartial(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore(time.Minute)).NewUnitOfWork(ctx).CancellationRepository()

	c, _, err := repo.CreateIfAbsent(ctx, newCancellation(uuid.New()))
	require.NoError(t, err)

	reason := "Other"
	require.NoError(t, repo.Update(ctx, c.ID, entity.CancellationPatch{Reason: &reason}))

	accepted := true
	require.NoError(t, repo.Update(ctx, c.ID, entity.CancellationPatch{AcceptedDownsell: &accepted}))
	require.NoError(t, repo.Update(ctx, c.ID, entity.CancellationPatch{}))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Reason)
	assert.Equal(t, "Other", *got.Reason)
	assert.True(t, got.AcceptedDownsell)

	// returned records are copies
	*got.Reason = "mutated"
	again, _ := repo.FindByID(ctx, c.ID)
	assert.Equal(t, "Other", *again.Reason)
}

func TestCancellationRepository_RecordsExpire(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore(50 * time.Millisecond)).NewUnitOfWork(ctx).CancellationRepository()
	userId := uuid.New()

	c, _, err := repo.CreateIfAbsent(ctx, newCancellation(userId))
	require.NoError(t, err)

	time.Sleep(120 * time.Millisecond)

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	byUser, err := repo.FindByUserID(ctx, userId)
	require.NoError(t, err)
	assert.Nil(t, byUser)
}

func TestSubscriptionRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore(0)).NewUnitOfWork(ctx).SubscriptionRepository()
	userId := uuid.New()

	require.NoError(t, repo.Save(ctx, &entity.Subscription{
		ID:           "sub_001",
		UserID:       userId,
		MonthlyPrice: 2500,
		Status:       entity.SubscriptionStatusActive,
	}))

	n, err := repo.UpdateStatusByUserID(ctx, userId,
		[]entity.SubscriptionStatus{entity.SubscriptionStatusActive},
		entity.SubscriptionStatusPendingCancellation)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateStatusByUserID(ctx, userId,
		[]entity.SubscriptionStatus{entity.SubscriptionStatusActive},
		entity.SubscriptionStatusPendingCancellation)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	s, err := repo.FindByUserID(ctx, userId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusPendingCancellation, s.Status)
}

func TestEventRepository_AppendsInOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore(time.Minute)).NewUnitOfWork(ctx).CancellationEventRepository()
	cancellationId := uuid.New()

	require.NoError(t, repo.Create(ctx, &entity.CancellationEvent{CancellationID: cancellationId, Type: entity.EventCancellationCreated}))
	require.NoError(t, repo.Create(ctx, &entity.CancellationEvent{CancellationID: cancellationId, Type: entity.EventCancellationUpdated}))

	events, err := repo.FindAllByCancellationID(ctx, cancellationId)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventCancellationCreated, events[0].Type)
	assert.Equal(t, entity.EventCancellationUpdated, events[1].Type)
}
