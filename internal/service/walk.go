package service

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/google/uuid"
)

type WalkService struct {
	walks   *repository.WalkRepository
	regions *repository.RegionRepository
}

func NewWalkService(walks *repository.WalkRepository, regions *repository.RegionRepository) *WalkService {
	return &WalkService{walks: walks, regions: regions}
}

func (s *WalkService) List(ctx context.Context, query *dto.ListQuery) ([]model.Walk, error) {
	return s.walks.List(ctx, query.ToOptions())
}

func (s *WalkService) Get(ctx context.Context, id uuid.UUID) (*model.Walk, error) {
	walk, err := s.walks.GetByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, notFound("Walk")
	}
	return walk, err
}

// checkReferences reports a missing region and a missing difficulty together.
func (s *WalkService) checkReferences(ctx context.Context, fields *dto.WalkFields) error {
	var problems validation.CustomValidationErrors

	regionOK, err := s.regions.Exists(ctx, fields.RegionID)
	if err != nil {
		return err
	}
	if !regionOK {
		problems.Add("regionId", "Region not found.")
	}

	difficultyOK, err := s.walks.DifficultyExists(ctx, fields.DifficultyID)
	if err != nil {
		return err
	}
	if !difficultyOK {
		problems.Add("difficultyId", "Difficulty not found.")
	}

	if len(problems) > 0 {
		return errs.NewValidationErrors(validation.FailedMessage, validation.FieldErrors(problems))
	}
	return nil
}

func (s *WalkService) Create(ctx context.Context, req *dto.CreateWalkRequest) (*model.Walk, error) {
	if err := s.checkReferences(ctx, &req.WalkFields); err != nil {
		return nil, err
	}

	walk := req.ToEntity()
	if err := s.walks.Create(ctx, walk); err != nil {
		return nil, err
	}
	return s.Get(ctx, walk.ID)
}

func (s *WalkService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateWalkRequest) (*model.Walk, error) {
	walk, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, &req.WalkFields); err != nil {
		return nil, err
	}

	req.ApplyTo(walk)
	if err := s.walks.Update(ctx, walk); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("Walk")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *WalkService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.walks.Delete(ctx, id)
	if repository.IsNotFound(err) {
		return notFound("Walk")
	}
	return err
}
