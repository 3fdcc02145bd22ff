package ports

import (
	"context"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/model/location"
)

// LocationRepository defines the persistence contract for locations.
type LocationRepository interface {
	// GetAll retrieves every known location.
	GetAll(ctx context.Context) ([]*location.Location, error)

	// Ensure resolves each site code to a location id, creating missing
	// locations on the fly. The returned mapping is complete for the
	// requested codes and immutable for the duration of the operation;
	// there is no process-wide cache.
	Ensure(ctx context.Context, codes []string) (map[string]kernel.UUID, error)
}
