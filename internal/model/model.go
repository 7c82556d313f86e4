// Package model holds the persisted entities.
//
// Column names follow GORM's snake_case convention and match the tables
// created by the migrations in internal/database.
package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base gives every entity a UUID primary key assigned on insert.
type Base struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// BeforeCreate fills ID when the caller left it empty.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type Region struct {
	Base
	Code           string `gorm:"size:3;not null;uniqueIndex:regions_code_key"`
	Name           string `gorm:"size:100;not null;uniqueIndex:regions_name_key"`
	RegionImageURL *string
}

type Difficulty struct {
	Base
	Name string `gorm:"size:50;not null"`
}

type Walk struct {
	Base
	Name         string  `gorm:"size:100;not null"`
	Description  *string `gorm:"size:1000"`
	LengthInKm   float64 `gorm:"not null"`
	WalkImageURL *string
	RegionID     uuid.UUID `gorm:"type:uuid;not null"`
	DifficultyID uuid.UUID `gorm:"type:uuid;not null"`

	Region     Region `gorm:"constraint:OnDelete:CASCADE"`
	Difficulty Difficulty
}

type Image struct {
	Base
	FileName        string `gorm:"size:255;not null"`
	FileExtension   string `gorm:"size:10;not null"`
	FileDescription *string
	FileSizeInBytes int64  `gorm:"not null"`
	FilePath        string `gorm:"not null"`
}
