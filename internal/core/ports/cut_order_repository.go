package ports

import (
	"context"

	"bundletrack/internal/core/domain/model/cutorder"
	"bundletrack/internal/core/domain/model/kernel"
)

// CutOrderRepository defines the persistence contract for cut order
// aggregates.
type CutOrderRepository interface {
	// Add persists a new cut order.
	Add(ctx context.Context, aggregate *cutorder.CutOrder) error

	// Update persists changes to an existing cut order.
	Update(ctx context.Context, aggregate *cutorder.CutOrder) error

	// Get retrieves a cut order by id. Returns an object-not-found error
	// when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*cutorder.CutOrder, error)

	// GetAllActive retrieves every order whose activity flag is still set,
	// the working set of the periodic activity sweep.
	GetAllActive(ctx context.Context) ([]*cutorder.CutOrder, error)
}
