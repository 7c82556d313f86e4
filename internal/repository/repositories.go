package repository

import (
	"context"

	"github.com/deppfellow/nzwalks/internal/server"
	"gorm.io/gorm"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Region *RegionRepository
	Walk   *WalkRepository
	Image  *ImageRepository
	User   *UserRepository
	Role   *RoleRepository

	db *gorm.DB
}

// NewRepositories builds the repositories on the server's ORM handle.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.ORM)
}

// New builds the repositories on db.
func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Region: NewRegionRepository(db),
		Walk:   NewWalkRepository(db),
		Image:  NewImageRepository(db),
		User:   NewUserRepository(db),
		Role:   NewRoleRepository(db),
		db:     db,
	}
}

// Transaction runs fn with repositories bound to one database transaction.
// It commits when fn returns nil and rolls back otherwise.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}
