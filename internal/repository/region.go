package repository

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	regionFilterColumns = listColumns{"name": "name"}
	regionSortColumns   = listColumns{"name": "name"}
)

type RegionRepository struct {
	db *gorm.DB
}

func NewRegionRepository(db *gorm.DB) *RegionRepository {
	return &RegionRepository{db: db}
}

func (r *RegionRepository) List(ctx context.Context, opts ListOptions) ([]model.Region, error) {
	regions := []model.Region{}
	err := applyListOptions(r.db.WithContext(ctx), opts, regionFilterColumns, regionSortColumns).
		Find(&regions).Error
	return regions, err
}

func (r *RegionRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Region, error) {
	var region model.Region
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&region).Error
	if IsNotFound(err) {
		return nil, notFound("regions")
	}
	if err != nil {
		return nil, err
	}
	return &region, nil
}

// Exists reports whether a region with id is stored.
func (r *RegionRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Region{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// ExistsWithCodeOrName reports whether any region other than excludeID
// already uses code or name. Pass uuid.Nil to check against every region.
func (r *RegionRepository) ExistsWithCodeOrName(ctx context.Context, code, name string, excludeID uuid.UUID) (bool, error) {
	q := r.db.WithContext(ctx).Model(&model.Region{}).Where("code = ? OR name = ?", code, name)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *RegionRepository) Create(ctx context.Context, region *model.Region) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(region).Error
}

// Update writes every editable column of region, including NULLs.
func (r *RegionRepository) Update(ctx context.Context, region *model.Region) error {
	res := r.db.WithContext(ctx).
		Model(region).
		Select("code", "name", "region_image_url").
		Updates(region)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("regions")
	}
	return nil
}

func (r *RegionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Region{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("regions")
	}
	return nil
}
