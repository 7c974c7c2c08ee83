package unitofwork

import "context"

// RepositoryFactory hands out units of work for one backing store.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
