// Package bundlerepo provides data transfer objects and mapping functions
// for bundle persistence. It implements the repository pattern for the
// bundle aggregate, converting between domain entities and the database
// rows for bundles and their append-only history ledger.
package bundlerepo

import (
	"time"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BundleDTO represents the database structure for persisting bundle
// aggregates. The stored number keeps the raw codec value; decoding into
// base and variant is domain logic. Version carries the optimistic
// concurrency counter checked by conditional updates.
type BundleDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID  `gorm:"type:uuid;index"`
	Number     *int64     `gorm:"type:bigint"`
	Sheets     int        `gorm:"not null"`
	Status     int        `gorm:"not null"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
	SSCC       string     `gorm:"column:sscc"`
	LUID       string     `gorm:"column:luid"`
	CreatedAt  time.Time  `gorm:"not null"`
	Version    int        `gorm:"not null"`
}

// TableName specifies the database table name for bundle entities.
func (BundleDTO) TableName() string {
	return "bundles"
}

// HistoryEntryDTO represents one ledger row. Rows are insert-only; the
// auto-incremented Seq column preserves insertion order within equal
// timestamps, and the stable entry ID makes re-inserts idempotent.
type HistoryEntryDTO struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BundleID        uuid.UUID  `gorm:"type:uuid;index"`
	Action          string     `gorm:"not null"`
	DestinationID   *uuid.UUID `gorm:"type:uuid"`
	WorkOrderNumber string
	OccurredAt      time.Time `gorm:"not null"`
	Seq             int64     `gorm:"autoIncrement"`
}

// TableName specifies the database table name for ledger rows.
func (HistoryEntryDTO) TableName() string {
	return "bundle_history"
}

// fromDomain converts a bundle aggregate to its database representation.
func fromDomain(aggregate *bundle.Bundle) BundleDTO {
	var number *int64
	if stored := aggregate.Number().Stored(); stored != nil {
		raw := int64(*stored)
		number = &raw
	}

	var locationID *uuid.UUID
	if id := aggregate.LocationID(); id != nil {
		raw := id.Bytes()
		locationID = &raw
	}

	return BundleDTO{
		ID:         aggregate.ID().Bytes(),
		OrderID:    aggregate.OrderID().Bytes(),
		Number:     number,
		Sheets:     aggregate.Sheets(),
		Status:     int(aggregate.Status()),
		LocationID: locationID,
		SSCC:       aggregate.SSCC(),
		LUID:       aggregate.LUID(),
		CreatedAt:  aggregate.CreatedAt(),
		Version:    aggregate.Version(),
	}
}

// historyFromDomain converts ledger entries to their database rows.
func historyFromDomain(bundleID kernel.UUID, entries []bundle.HistoryEntry) []HistoryEntryDTO {
	dtos := make([]HistoryEntryDTO, 0, len(entries))
	for _, entry := range entries {
		var destinationID *uuid.UUID
		if id := entry.DestinationID(); id != nil {
			raw := id.Bytes()
			destinationID = &raw
		}

		dtos = append(dtos, HistoryEntryDTO{
			ID:              entry.ID().Bytes(),
			BundleID:        bundleID.Bytes(),
			Action:          entry.Action().String(),
			DestinationID:   destinationID,
			WorkOrderNumber: entry.WorkOrderNumber(),
			OccurredAt:      entry.OccurredAt(),
		})
	}

	return dtos
}

// toDomain converts database rows to a bundle aggregate. History rows must
// be ordered oldest first.
func toDomain(dto BundleDTO, historyDTOs []HistoryEntryDTO) (*bundle.Bundle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var stored *int
	if dto.Number != nil {
		value := int(*dto.Number)
		stored = &value
	}

	var locationID *kernel.UUID
	if dto.LocationID != nil {
		loc, locErr := kernel.UUIDFromBytes((*dto.LocationID)[:])
		if locErr != nil {
			return nil, locErr
		}
		locationID = &loc
	}

	history := make([]bundle.HistoryEntry, 0, len(historyDTOs))
	for _, entryDTO := range historyDTOs {
		entry, entryErr := historyEntryToDomain(entryDTO)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return bundle.RestoreBundle(
		id,
		orderID,
		bundle.NumberFromStored(stored),
		dto.Sheets,
		bundle.Status(dto.Status),
		locationID,
		dto.SSCC,
		dto.LUID,
		dto.CreatedAt,
		history,
		dto.Version,
	)
}

// historyEntryToDomain converts one ledger row to its value object.
func historyEntryToDomain(dto HistoryEntryDTO) (bundle.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return bundle.HistoryEntry{}, err
	}

	action, err := bundle.ActionFromString(dto.Action)
	if err != nil {
		return bundle.HistoryEntry{}, err
	}

	var destinationID *kernel.UUID
	if dto.DestinationID != nil {
		dest, destErr := kernel.UUIDFromBytes((*dto.DestinationID)[:])
		if destErr != nil {
			return bundle.HistoryEntry{}, destErr
		}
		destinationID = &dest
	}

	return bundle.RestoreHistoryEntry(id, action, destinationID, dto.WorkOrderNumber, dto.OccurredAt)
}
