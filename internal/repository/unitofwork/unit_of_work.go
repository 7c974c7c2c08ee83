package unitofwork

import (
	"context"

	"cancelflow-be/internal/repository/contract"
)

// UnitOfWork groups repository calls that must commit together. Stores without real
// transactions (bolt, memory) implement Begin/Commit/Rollback as no-ops and make each
// repository call atomic on its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CancellationRepository() contract.CancellationRepository
	SubscriptionRepository() contract.SubscriptionRepository
	CancellationEventRepository() contract.CancellationEventRepository
}
