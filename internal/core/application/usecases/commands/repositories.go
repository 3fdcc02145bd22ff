// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: constructor
// validation, transaction management, persistence, and a best-effort
// post-commit activity refresh where an action can close out a cut order.
package commands

import (
	"context"

	"bundletrack/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler depends only on the repositories it actually
// touches so mocks stay small.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// BundleRepoFactory provides access to the bundle repository within a
	// transaction.
	BundleRepoFactory interface {
		BundleRepository() ports.BundleRepository
	}

	// CutOrderRepoFactory provides access to the cut order repository
	// within a transaction.
	CutOrderRepoFactory interface {
		CutOrderRepository() ports.CutOrderRepository
	}

	// LocationRepoFactory provides access to the location repository
	// within a transaction.
	LocationRepoFactory interface {
		LocationRepository() ports.LocationRepository
	}

	// BundleUoW manages transactions for bundle actions that may resolve
	// destination sites (move) on the fly.
	BundleUoW interface {
		TxManager
		BundleRepoFactory
		LocationRepoFactory
	}

	// BundleUoWFactory creates new bundle unit of work instances.
	BundleUoWFactory interface {
		Create() BundleUoW
	}

	// SplitUoW manages the split transaction. The whole read-then-write
	// span over the sibling group runs inside it.
	SplitUoW interface {
		TxManager
		BundleRepoFactory
	}

	// SplitUoWFactory creates new split unit of work instances.
	SplitUoWFactory interface {
		Create() SplitUoW
	}

	// OrderUoW manages transactions that create a cut order together with
	// its initial bundles and starting location.
	OrderUoW interface {
		TxManager
		CutOrderRepoFactory
		BundleRepoFactory
		LocationRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ActivityUoW manages transactions that re-derive a cut order's
	// activity flag from its bundles.
	ActivityUoW interface {
		TxManager
		CutOrderRepoFactory
		BundleRepoFactory
	}

	// ActivityUoWFactory creates new activity unit of work instances.
	ActivityUoWFactory interface {
		Create() ActivityUoW
	}
)

// OrderActivityRefresher re-derives one cut order's activity flag. Mutating
// handlers call it after their own transaction commits; failures are logged
// by the caller and never propagated as the primary operation's failure.
type OrderActivityRefresher interface {
	Handle(ctx context.Context, cmd RefreshOrderActivityCommand) error
}
