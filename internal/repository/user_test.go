package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/repository/repositorytest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestUserCreateLinksRoles(t *testing.T) {
	repos := repository.New(repositorytest.NewDB(t))
	ctx := context.Background()

	roles, err := repos.Role.FindByNames(ctx, []string{model.RoleWriter, model.RoleReader, "Admin"})
	require.NoError(t, err)
	require.Len(t, roles, 2)

	user := &model.User{Username: "walker@example.com", PasswordHash: "hash", Roles: roles}
	require.NoError(t, repos.User.Create(ctx, user))

	loaded, err := repos.User.GetByUsername(ctx, "Walker@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loaded.ID)
	assert.ElementsMatch(t, []string{model.RoleReader, model.RoleWriter}, loaded.RoleNames())

	taken, err := repos.User.UsernameTaken(ctx, "WALKER@example.com")
	require.NoError(t, err)
	assert.True(t, taken)

	_, err = repos.User.GetByUsername(ctx, "nobody@example.com")
	assert.True(t, repository.IsNotFound(err))
}

func TestTransactionRollsBack(t *testing.T) {
	repos := repository.New(repositorytest.NewDB(t))
	ctx := context.Background()
	boom := errors.New("boom")

	err := repos.Transaction(ctx, func(tx *repository.Repositories) error {
		require.NoError(t, tx.User.Create(ctx, &model.User{Username: "walker@example.com", PasswordHash: "hash"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	taken, err := repos.User.UsernameTaken(ctx, "walker@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUsernameUniqueIgnoresCase(t *testing.T) {
	repos := repository.New(repositorytest.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repos.User.Create(ctx, &model.User{Username: "alice@example.com", PasswordHash: "hash"}))

	err := repos.User.Create(ctx, &model.User{Username: "Alice@Example.com", PasswordHash: "hash"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
