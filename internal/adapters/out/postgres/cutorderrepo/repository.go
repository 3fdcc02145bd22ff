package cutorderrepo

import (
	"context"
	"errors"

	"bundletrack/internal/core/domain/model/cutorder"
	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCutOrderRepository implements CutOrderRepository using GORM.
type GormCutOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormCutOrderRepository creates a new GORM cut order repository.
func NewGormCutOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormCutOrderRepository {
	return &GormCutOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new cut order to the database.
func (r *GormCutOrderRepository) Add(ctx context.Context, aggregate *cutorder.CutOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing cut order to the database.
func (r *GormCutOrderRepository) Update(ctx context.Context, aggregate *cutorder.CutOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CutOrderDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"code":                  dto.Code,
			"date":                  dto.Date,
			"declared_bundle_count": dto.DeclaredBundleCount,
			"active":                dto.Active,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cutOrder", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a cut order by ID.
func (r *GormCutOrderRepository) Get(ctx context.Context, id kernel.UUID) (*cutorder.CutOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CutOrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cutOrder", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every cut order whose activity flag is still set.
func (r *GormCutOrderRepository) GetAllActive(ctx context.Context) ([]*cutorder.CutOrder, error) {
	var dtos []CutOrderDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "active = ?", true).Error; err != nil {
		return nil, err
	}

	orders := make([]*cutorder.CutOrder, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
