package unitofwork

import "context"

// RepositoryFactory hands out per-request units of work over the shared
// database handle.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
