package repository

import (
	"context"
	"strings"

	"github.com/deppfellow/nzwalks/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByUsername loads a user and their roles. Usernames compare
// case-insensitively.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Take(&user).Error
	if IsNotFound(err) {
		return nil, notFound("users")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("LOWER(username) = ?", strings.ToLower(username)).
		Count(&count).Error
	return count > 0, err
}

// Create inserts user and links it to user.Roles, which must already exist.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Roles.*").Create(user).Error
}

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

// FindByNames returns the stored roles among names, ordered by name.
func (r *RoleRepository) FindByNames(ctx context.Context, names []string) ([]model.Role, error) {
	roles := []model.Role{}
	if len(names) == 0 {
		return roles, nil
	}
	err := r.db.WithContext(ctx).Where("name IN ?", names).Order("name").Find(&roles).Error
	return roles, err
}
