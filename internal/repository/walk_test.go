package repository_test

import (
	"context"
	"testing"

	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/repository/repositorytest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCRUDLoadsReferences(t *testing.T) {
	db := repositorytest.NewDB(t)
	regions := repositorytest.SeedRegions(t, db, map[string]string{"TNG": "Tongariro"})
	repo := repository.NewWalkRepository(db)
	ctx := context.Background()

	description := "Volcanic crossing"
	walk := &model.Walk{
		Name:         "Tongariro Alpine Crossing",
		Description:  &description,
		LengthInKm:   19.4,
		RegionID:     regions["TNG"].ID,
		DifficultyID: model.HardDifficultyID,
	}
	require.NoError(t, repo.Create(ctx, walk))

	loaded, err := repo.GetByID(ctx, walk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tongariro", loaded.Region.Name)
	assert.Equal(t, "Hard", loaded.Difficulty.Name)
	assert.InDelta(t, 19.4, loaded.LengthInKm, 1e-9)

	loaded.DifficultyID = model.MediumDifficultyID
	loaded.Description = nil
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.GetByID(ctx, walk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Medium", reloaded.Difficulty.Name)
	assert.Nil(t, reloaded.Description)

	require.NoError(t, repo.Delete(ctx, walk.ID))
	assert.True(t, repository.IsNotFound(repo.Delete(ctx, walk.ID)))
}

func TestWalkListFiltersSortsAndPreloads(t *testing.T) {
	db := repositorytest.NewDB(t)
	regions := repositorytest.SeedRegions(t, db, map[string]string{"FIO": "Fiordland"})
	repo := repository.NewWalkRepository(db)
	ctx := context.Background()

	for _, name := range []string{"Milford Track", "Kepler Track", "Routeburn Track", "Hollyford Walk"} {
		require.NoError(t, repo.Create(ctx, &model.Walk{
			Name:         name,
			LengthInKm:   10,
			RegionID:     regions["FIO"].ID,
			DifficultyID: model.EasyDifficultyID,
		}))
	}

	got, err := repo.List(ctx, repository.ListOptions{FilterOn: "name", FilterQuery: "Track", SortBy: "name", Ascending: false, PageSize: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Routeburn Track", got[0].Name)
	assert.Equal(t, "Milford Track", got[1].Name)
	assert.Equal(t, "Fiordland", got[0].Region.Name)
	assert.Equal(t, "Easy", got[0].Difficulty.Name)
}

func TestWalkDifficultyExists(t *testing.T) {
	repo := repository.NewWalkRepository(repositorytest.NewDB(t))

	ok, err := repo.DifficultyExists(context.Background(), model.EasyDifficultyID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.DifficultyExists(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}
