// Package cutorderrepo provides data transfer objects and mapping functions
// for cut order persistence.
package cutorderrepo

import (
	"time"

	"bundletrack/internal/core/domain/model/cutorder"
	"bundletrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CutOrderDTO represents the database structure for persisting cut orders.
// The active flag is indexed because the periodic sweep scans by it.
type CutOrderDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Code                string    `gorm:"not null"`
	Date                time.Time `gorm:"not null"`
	DeclaredBundleCount int       `gorm:"not null"`
	Active              bool      `gorm:"index;not null"`
}

// TableName specifies the database table name for cut order entities.
func (CutOrderDTO) TableName() string {
	return "cut_orders"
}

// fromDomain converts a cut order aggregate to its database representation.
func fromDomain(aggregate *cutorder.CutOrder) CutOrderDTO {
	return CutOrderDTO{
		ID:                  aggregate.ID().Bytes(),
		Code:                aggregate.Code(),
		Date:                aggregate.Date(),
		DeclaredBundleCount: aggregate.DeclaredBundleCount(),
		Active:              aggregate.Active(),
	}
}

// toDomain converts a database DTO to a cut order aggregate.
func toDomain(dto CutOrderDTO) (*cutorder.CutOrder, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return cutorder.RestoreCutOrder(id, dto.Code, dto.Date, dto.DeclaredBundleCount, dto.Active)
}
