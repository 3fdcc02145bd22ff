package queries

import (
	"context"

	"bundletrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListLocationsQueryResponse is the read model for the site catalog.
type ListLocationsQueryResponse struct {
	Locations []LocationResponse
}

type LocationResponse struct {
	ID   kernel.UUID
	Code string
}

// ListLocationsQueryHandler reads the full site catalog, ordered by code.
type ListLocationsQueryHandler struct {
	db *gorm.DB
}

// NewListLocationsQueryHandler creates a handler for site catalog reads.
// Requires a GORM database connection for query execution.
func NewListLocationsQueryHandler(db *gorm.DB) ListLocationsQueryHandler {
	return ListLocationsQueryHandler{db: db}
}

func (h ListLocationsQueryHandler) Handle(ctx context.Context) (ListLocationsQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			code
		FROM locations
		ORDER BY code
	`).Rows()
	if err != nil {
		return ListLocationsQueryResponse{}, err
	}
	defer rows.Close()

	var response ListLocationsQueryResponse
	for rows.Next() {
		var (
			id   uuid.UUID
			code string
		)
		if err = rows.Scan(&id, &code); err != nil {
			return ListLocationsQueryResponse{}, err
		}

		locationID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return ListLocationsQueryResponse{}, idErr
		}

		response.Locations = append(response.Locations, LocationResponse{ID: locationID, Code: code})
	}

	if err = rows.Err(); err != nil {
		return ListLocationsQueryResponse{}, err
	}

	return response, nil
}
