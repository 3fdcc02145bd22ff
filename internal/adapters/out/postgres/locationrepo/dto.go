// Package locationrepo provides data transfer objects and mapping functions
// for site catalog persistence.
package locationrepo

import (
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/model/location"

	"github.com/google/uuid"
)

// LocationDTO represents the database structure for persisting locations.
// The unique index on code is what makes concurrent first-use creation of
// the same site safe.
type LocationDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code string    `gorm:"uniqueIndex;not null"`
}

// TableName specifies the database table name for location entities.
func (LocationDTO) TableName() string {
	return "locations"
}

// toDomain converts a database DTO to a location entity.
func toDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(id, dto.Code)
}
