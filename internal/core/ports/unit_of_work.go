package ports

import (
	"context"
)

// UnitOfWorkFactory creates a fresh UnitOfWork per business operation so
// concurrent operations stay isolated from each other.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents one business transaction boundary. Everything a
// handler mutates through the repositories below lands in the same database
// transaction, which is what makes a bundle action, and in particular the
// split's read-then-write span over a sibling group, atomic: either the
// whole action commits or nothing does.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns an error if no transaction is active or the commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns an error if no transaction is active or the rollback fails.
	Rollback(ctx context.Context) error

	// BundleRepository returns a BundleRepository bound to the current
	// transaction.
	BundleRepository() BundleRepository

	// CutOrderRepository returns a CutOrderRepository bound to the current
	// transaction.
	CutOrderRepository() CutOrderRepository

	// LocationRepository returns a LocationRepository bound to the current
	// transaction.
	LocationRepository() LocationRepository
}
