package locationrepo

import (
	"context"

	"bundletrack/internal/core/domain/model/kernel"
	"bundletrack/internal/core/domain/model/location"
	"bundletrack/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLocationRepository implements LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM location repository.
func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

// GetAll retrieves every known location.
func (r *GormLocationRepository) GetAll(ctx context.Context) ([]*location.Location, error) {
	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Order("code").Find(&dtos).Error; err != nil {
		return nil, err
	}

	locations := make([]*location.Location, 0, len(dtos))
	for _, dto := range dtos {
		l, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		locations = append(locations, l)
	}

	return locations, nil
}

// Ensure resolves each site code to a location ID, creating missing sites on
// the fly. The insert ignores conflicts on the unique code index and the
// rows are re-read afterwards, so two writers racing on the same new code
// both end up with the one ID that won.
func (r *GormLocationRepository) Ensure(ctx context.Context, codes []string) (map[string]kernel.UUID, error) {
	if len(codes) == 0 {
		return map[string]kernel.UUID{}, nil
	}

	distinct := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		if code == "" {
			return nil, errs.NewValueIsRequiredError("locationCode")
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		distinct = append(distinct, code)
	}

	candidates := make([]LocationDTO, 0, len(distinct))
	for _, code := range distinct {
		candidates = append(candidates, LocationDTO{
			ID:   kernel.NewUUID().Bytes(),
			Code: code,
		})
	}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoNothing: true,
		}).
		Create(&candidates).Error; err != nil {
		return nil, err
	}

	var dtos []LocationDTO
	if err := r.db.WithContext(ctx).Find(&dtos, "code IN ?", distinct).Error; err != nil {
		return nil, err
	}

	resolved := make(map[string]kernel.UUID, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		resolved[dto.Code] = id
	}

	return resolved, nil
}
