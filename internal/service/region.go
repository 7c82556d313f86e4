package service

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/google/uuid"
)

const (
	RegionExistsMessage          = "Region already exists."
	RegionCodeOrNameTakenMessage = "Duplication region code or name already exists."
)

type RegionService struct {
	regions *repository.RegionRepository
}

func NewRegionService(regions *repository.RegionRepository) *RegionService {
	return &RegionService{regions: regions}
}

func (s *RegionService) List(ctx context.Context, query *dto.ListQuery) ([]model.Region, error) {
	return s.regions.List(ctx, query.ToOptions())
}

func (s *RegionService) Get(ctx context.Context, id uuid.UUID) (*model.Region, error) {
	region, err := s.regions.GetByID(ctx, id)
	if repository.IsNotFound(err) {
		return nil, notFound("Region")
	}
	return region, err
}

// Create rejects a region whose code or name is already in use.
//
// The lookup and the insert are separate statements; two concurrent
// creates can both pass the lookup, in which case the unique constraints
// reject the second insert and sqlerr reports it as a duplicate.
func (s *RegionService) Create(ctx context.Context, req *dto.CreateRegionRequest) (*model.Region, error) {
	taken, err := s.regions.ExistsWithCodeOrName(ctx, req.Code, req.Name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewDuplicateError("Region", RegionExistsMessage)
	}

	region := req.ToEntity()
	if err := s.regions.Create(ctx, region); err != nil {
		return nil, err
	}
	return region, nil
}

// Update replaces a region's fields. Keeping its own code or name is not a conflict.
func (s *RegionService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRegionRequest) (*model.Region, error) {
	region, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.regions.ExistsWithCodeOrName(ctx, req.Code, req.Name, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewDuplicateError("Region", RegionCodeOrNameTakenMessage)
	}

	req.ApplyTo(region)
	if err := s.regions.Update(ctx, region); err != nil {
		if repository.IsNotFound(err) {
			return nil, notFound("Region")
		}
		return nil, err
	}
	return region, nil
}

func (s *RegionService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.regions.Delete(ctx, id)
	if repository.IsNotFound(err) {
		return notFound("Region")
	}
	return err
}
