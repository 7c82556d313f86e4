// Package repositorytest opens throwaway databases for tests.
package repositorytest

import (
	"fmt"
	"testing"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a private in-memory SQLite database with the schema migrated
// and the fixed roles and difficulties seeded.
//
// LIKE is switched to case-sensitive and foreign keys are enforced so the
// database behaves like PostgreSQL for the queries the repositories issue.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1&_cslike=1", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps the in-memory database and its pragmas alive.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Region{},
		&model.Difficulty{},
		&model.Walk{},
		&model.Image{},
		&model.Role{},
		&model.User{},
	))
	require.NoError(t, db.Exec("CREATE UNIQUE INDEX users_username_key ON users (LOWER(username))").Error)

	require.NoError(t, db.Create(model.SeedRoles()).Error)
	require.NoError(t, db.Create(model.SeedDifficulties()).Error)

	return db
}

// SeedRegions inserts a region per name, deriving codes from the given map.
func SeedRegions(t testing.TB, db *gorm.DB, codeToName map[string]string) map[string]*model.Region {
	t.Helper()

	out := make(map[string]*model.Region, len(codeToName))
	for code, name := range codeToName {
		region := &model.Region{Code: code, Name: name}
		require.NoError(t, db.Create(region).Error)
		out[code] = region
	}
	return out
}
