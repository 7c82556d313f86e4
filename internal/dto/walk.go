package dto

import (
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/google/uuid"
)

type DifficultyResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type WalkResponse struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Description  *string            `json:"description"`
	LengthInKm   float64            `json:"lengthInKm"`
	WalkImageURL *string            `json:"walkImageUrl"`
	RegionID     uuid.UUID          `json:"regionId"`
	DifficultyID uuid.UUID          `json:"difficultyId"`
	Region       RegionResponse     `json:"region"`
	Difficulty   DifficultyResponse `json:"difficulty"`
}

func FromWalk(w *model.Walk) WalkResponse {
	return WalkResponse{
		ID:           w.ID,
		Name:         w.Name,
		Description:  w.Description,
		LengthInKm:   w.LengthInKm,
		WalkImageURL: w.WalkImageURL,
		RegionID:     w.RegionID,
		DifficultyID: w.DifficultyID,
		Region:       FromRegion(&w.Region),
		Difficulty: DifficultyResponse{
			ID:   w.Difficulty.ID,
			Name: w.Difficulty.Name,
		},
	}
}

func FromWalks(walks []model.Walk) []WalkResponse {
	out := make([]WalkResponse, 0, len(walks))
	for i := range walks {
		out = append(out, FromWalk(&walks[i]))
	}
	return out
}

// WalkFields are the editable walk attributes shared by create and update.
type WalkFields struct {
	Name         string    `json:"name" validate:"required,max=100"`
	Description  *string   `json:"description" validate:"omitempty,max=1000"`
	LengthInKm   float64   `json:"lengthInKm" validate:"gt=0"`
	WalkImageURL *string   `json:"walkImageUrl" validate:"omitempty,url"`
	RegionID     uuid.UUID `json:"regionId" validate:"required"`
	DifficultyID uuid.UUID `json:"difficultyId" validate:"required"`
}

func (f *WalkFields) applyTo(w *model.Walk) {
	w.Name = f.Name
	w.Description = f.Description
	w.LengthInKm = f.LengthInKm
	w.WalkImageURL = f.WalkImageURL
	w.RegionID = f.RegionID
	w.DifficultyID = f.DifficultyID
}

type CreateWalkRequest struct {
	WalkFields
}

func (r *CreateWalkRequest) Validate() error {
	return validation.Struct(r)
}

func (r *CreateWalkRequest) ToEntity() *model.Walk {
	w := &model.Walk{}
	r.applyTo(w)
	return w
}

type UpdateWalkRequest struct {
	ID string `param:"id" json:"-" validate:"required,uuid"`
	WalkFields
}

func (r *UpdateWalkRequest) Validate() error {
	return validation.Struct(r)
}

// ApplyTo copies the editable fields onto an existing walk.
func (r *UpdateWalkRequest) ApplyTo(w *model.Walk) {
	r.applyTo(w)
}
