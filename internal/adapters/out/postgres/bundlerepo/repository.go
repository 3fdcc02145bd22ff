package bundlerepo

import (
	"context"
	"errors"

	"bundletrack/internal/core/domain/model/bundle"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBundleRepository implements BundleRepository using GORM.
type GormBundleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormBundleRepository creates a new GORM bundle repository.
func NewGormBundleRepository(db *gorm.DB, tracker aggregateTracker) *GormBundleRepository {
	return &GormBundleRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new bundle together with its initial ledger entries.
func (r *GormBundleRepository) Add(ctx context.Context, aggregate *bundle.Bundle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing bundle conditionally on the version it was loaded
// with and appends the pending ledger entries. A concurrent writer bumping
// the version first makes the conditional update affect no rows, which
// surfaces as a version-conflict error so the caller can roll back and retry.
func (r *GormBundleRepository) Update(ctx context.Context, aggregate *bundle.Bundle) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BundleDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Updates(map[string]any{
			"number":      dto.Number,
			"sheets":      dto.Sheets,
			"status":      dto.Status,
			"location_id": dto.LocationID,
			"sscc":        dto.SSCC,
			"luid":        dto.LUID,
			"version":     aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&BundleDTO{}).
			Where("id = ?", dto.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("bundle", aggregate.ID().String())
		}
		return errs.NewVersionConflictError("bundle", aggregate.ID().String())
	}

	if err := r.appendHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a bundle by ID with its full ledger, oldest first.
func (r *GormBundleRepository) Get(ctx context.Context, id kernel.UUID) (*bundle.Bundle, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BundleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("bundle", id.String())
		}
		return nil, err
	}

	var historyDTOs []HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Where("bundle_id = ?", dto.ID).
		Order("occurred_at, seq").
		Find(&historyDTOs).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, historyDTOs)
}

// GetByOrder retrieves every bundle of a cut order with its ledger. The
// result carries the whole sibling group a split needs to pick the next
// variant from.
func (r *GormBundleRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*bundle.Bundle, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []BundleDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	var historyDTOs []HistoryEntryDTO
	if err := r.db.WithContext(ctx).
		Where("bundle_id IN (?)",
			r.db.Model(&BundleDTO{}).Select("id").Where("order_id = ?", orderID.Bytes())).
		Order("bundle_id, occurred_at, seq").
		Find(&historyDTOs).Error; err != nil {
		return nil, err
	}

	historiesByBundle := make(map[uuid.UUID][]HistoryEntryDTO, len(dtos))
	for _, entryDTO := range historyDTOs {
		historiesByBundle[entryDTO.BundleID] = append(historiesByBundle[entryDTO.BundleID], entryDTO)
	}

	bundles := make([]*bundle.Bundle, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto, historiesByBundle[dto.ID])
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, b)
	}

	return bundles, nil
}

// appendHistory inserts the aggregate's pending ledger entries. Entry IDs
// are stable, so re-running the insert after a retried transaction does not
// duplicate rows.
func (r *GormBundleRepository) appendHistory(ctx context.Context, aggregate *bundle.Bundle) error {
	pending := aggregate.PendingHistory()
	if len(pending) == 0 {
		return nil
	}

	dtos := historyFromDomain(aggregate.ID(), pending)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&dtos).Error
}
