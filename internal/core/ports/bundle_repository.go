// Package ports defines the persistence contracts between the domain layer
// and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
)

// BundleRepository defines the persistence contract for bundle aggregates.
// History entries are append-only: Add and Update persist the aggregate's
// pending entries and never touch stored ones.
type BundleRepository interface {
	// Add persists a new bundle aggregate together with its initial
	// history entries.
	Add(ctx context.Context, aggregate *bundle.Bundle) error

	// Update persists changes to an existing bundle conditionally on the
	// version the aggregate was loaded with. When a concurrent writer got
	// there first the update affects no rows and a version-conflict error
	// is returned; the caller rolls back and may retry after reloading.
	// Pending history entries are appended in the same call.
	Update(ctx context.Context, aggregate *bundle.Bundle) error

	// Get retrieves a bundle by id with its full history, oldest first.
	// Returns an object-not-found error when no such bundle exists.
	Get(ctx context.Context, id kernel.UUID) (*bundle.Bundle, error)

	// GetByOrder retrieves every bundle belonging to a cut order, the
	// sibling-group load of the split algorithm.
	GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*bundle.Bundle, error)
}
