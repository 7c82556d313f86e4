package repository

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	walkFilterColumns = listColumns{"name": "name"}
	walkSortColumns   = listColumns{"name": "name"}
)

type WalkRepository struct {
	db *gorm.DB
}

func NewWalkRepository(db *gorm.DB) *WalkRepository {
	return &WalkRepository{db: db}
}

func (r *WalkRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Region").Preload("Difficulty")
}

func (r *WalkRepository) List(ctx context.Context, opts ListOptions) ([]model.Walk, error) {
	walks := []model.Walk{}
	err := applyListOptions(r.withRefs(ctx), opts, walkFilterColumns, walkSortColumns).
		Find(&walks).Error
	return walks, err
}

// GetByID loads the walk with its region and difficulty.
func (r *WalkRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Walk, error) {
	var walk model.Walk
	err := r.withRefs(ctx).Where("id = ?", id).Take(&walk).Error
	if IsNotFound(err) {
		return nil, notFound("walks")
	}
	if err != nil {
		return nil, err
	}
	return &walk, nil
}

// DifficultyExists reports whether id names a seeded difficulty.
func (r *WalkRepository) DifficultyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Difficulty{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *WalkRepository) Create(ctx context.Context, walk *model.Walk) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(walk).Error
}

func (r *WalkRepository) Update(ctx context.Context, walk *model.Walk) error {
	res := r.db.WithContext(ctx).
		Model(walk).
		Omit(clause.Associations).
		Select("name", "description", "length_in_km", "walk_image_url", "region_id", "difficulty_id").
		Updates(walk)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("walks")
	}
	return nil
}

func (r *WalkRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Walk{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("walks")
	}
	return nil
}
