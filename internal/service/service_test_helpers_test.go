package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cancelflow-be/internal/dto"
	"cancelflow-be/internal/entity"
	"cancelflow-be/internal/pkg/logger"
	"cancelflow-be/internal/repository/contract"
	"cancelflow-be/internal/repository/memory"
	"cancelflow-be/internal/repository/unitofwork"
	"cancelflow-be/pkg/abtest"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const (
	mockUserId = "550e8400-e29b-41d4-a716-446655440001" // variant A
	userB      = "550e8400-e29b-41d4-a716-446655440004" // variant B
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.CancellationEventMessage
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, event dto.CancellationEventMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type testEnv struct {
	store     *memory.Store
	factory   unitofwork.RepositoryFactory
	publisher *recordingPublisher
	service   ICancellationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore(time.Minute)
	factory := memory.NewRepositoryFactory(store)
	publisher := &recordingPublisher{}

	seedSubscription(t, factory, mockUserId, 2500)
	seedSubscription(t, factory, userB, 2500)

	return &testEnv{
		store:     store,
		factory:   factory,
		publisher: publisher,
		service:   NewCancellationService(factory, abtest.NewHashAssigner(), nil, publisher, logger.NewNopLogger()),
	}
}

func seedSubscription(t *testing.T, factory unitofwork.RepositoryFactory, userId string, price int64) {
	t.Helper()
	ctx := context.Background()
	err := factory.NewUnitOfWork(ctx).SubscriptionRepository().Save(ctx, &entity.Subscription{
		ID:           "sub_" + userId[len(userId)-3:],
		UserID:       uuid.MustParse(userId),
		Email:        "user" + userId[len(userId)-1:] + "@example.com",
		MonthlyPrice: price,
		Status:       entity.SubscriptionStatusActive,
	})
	require.NoError(t, err)
}

// failingFactory wraps a working store but fails every cancellation lookup.
type failingFactory struct {
	inner unitofwork.RepositoryFactory
}

func (f failingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return failingUow{UnitOfWork: f.inner.NewUnitOfWork(ctx)}
}

type failingUow struct {
	unitofwork.UnitOfWork
}

func (u failingUow) CancellationRepository() contract.CancellationRepository {
	return failingRepo{CancellationRepository: u.UnitOfWork.CancellationRepository()}
}

type failingRepo struct {
	contract.CancellationRepository
}

var errStoreDown = errors.New("connection refused")

func (failingRepo) FindByUserID(context.Context, uuid.UUID) (*entity.Cancellation, error) {
	return nil, errStoreDown
}

func (failingRepo) FindByID(context.Context, uuid.UUID) (*entity.Cancellation, error) {
	return nil, errStoreDown
}
