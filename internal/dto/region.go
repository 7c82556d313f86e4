package dto

import (
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/google/uuid"
)

type RegionResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	RegionImageURL *string   `json:"regionImageUrl"`
}

func FromRegion(r *model.Region) RegionResponse {
	return RegionResponse{
		ID:             r.ID,
		Code:           r.Code,
		Name:           r.Name,
		RegionImageURL: r.RegionImageURL,
	}
}

func FromRegions(regions []model.Region) []RegionResponse {
	out := make([]RegionResponse, 0, len(regions))
	for i := range regions {
		out = append(out, FromRegion(&regions[i]))
	}
	return out
}

type CreateRegionRequest struct {
	Code           string  `json:"code" validate:"required,len=3"`
	Name           string  `json:"name" validate:"required,max=100"`
	RegionImageURL *string `json:"regionImageUrl" validate:"omitempty,url"`
}

func (r *CreateRegionRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateRegionRequest) ToEntity() *model.Region {
	return &model.Region{
		Code:           r.Code,
		Name:           r.Name,
		RegionImageURL: r.RegionImageURL,
	}
}

type UpdateRegionRequest struct {
	ID             string  `param:"id" json:"-" validate:"required,uuid"`
	Code           string  `json:"code" validate:"required,len=3"`
	Name           string  `json:"name" validate:"required,max=100"`
	RegionImageURL *string `json:"regionImageUrl" validate:"omitempty,url"`
}

func (r *UpdateRegionRequest) Validate() error {
	return validation.Struct(r)
}

// ApplyTo copies the editable fields onto an existing region.
func (r *UpdateRegionRequest) ApplyTo(region *model.Region) {
	region.Code = r.Code
	region.Name = r.Name
	region.RegionImageURL = r.RegionImageURL
}
