package unitofwork

import "context"

// RepositoryFactory hands out units of work bound to the backing store.
// Services depend on this so tests can swap in the memory implementation.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
