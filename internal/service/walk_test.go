package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/deppfellow/nzwalks/internal/dto"
	"github.com/deppfellow/nzwalks/internal/model"
	"github.com/deppfellow/nzwalks/internal/repository/repositorytest"
	"github.com/deppfellow/nzwalks/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalkCreateLoadsReferences(t *testing.T) {
	repos, db := newRepos(t)
	svc := service.NewWalkService(repos.Walk, repos.Region)
	seeded := repositorytest.SeedRegions(t, db, map[string]string{"TKR": "Taranaki"})

	walk, err := svc.Create(context.Background(), &dto.CreateWalkRequest{WalkFields: dto.WalkFields{
		Name:         "Pouakai Crossing",
		LengthInKm:   19,
		RegionID:     seeded["TKR"].ID,
		DifficultyID: model.HardDifficultyID,
	}})
	require.NoError(t, err)

	assert.Equal(t, "Taranaki", walk.Region.Name)
	assert.Equal(t, "Hard", walk.Difficulty.Name)
}

func TestWalkCreateReportsMissingReferencesTogether(t *testing.T) {
	repos, _ := newRepos(t)
	svc := service.NewWalkService(repos.Walk, repos.Region)

	_, err := svc.Create(context.Background(), &dto.CreateWalkRequest{WalkFields: dto.WalkFields{
		Name:         "Nowhere Track",
		LengthInKm:   3,
		RegionID:     uuid.New(),
		DifficultyID: uuid.New(),
	}})

	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, []string{"Region not found."}, fieldMessages(httpErr, "regionId"))
	assert.Equal(t, []string{"Difficulty not found."}, fieldMessages(httpErr, "difficultyId"))
}

func TestWalkUpdateAndDelete(t *testing.T) {
	repos, db := newRepos(t)
	svc := service.NewWalkService(repos.Walk, repos.Region)
	ctx := context.Background()
	seeded := repositorytest.SeedRegions(t, db, map[string]string{"AKL": "Auckland", "NTL": "Northland"})

	walk, err := svc.Create(ctx, &dto.CreateWalkRequest{WalkFields: dto.WalkFields{
		Name: "Coast to Coast", LengthInKm: 16, RegionID: seeded["AKL"].ID, DifficultyID: model.EasyDifficultyID,
	}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, walk.ID, &dto.UpdateWalkRequest{WalkFields: dto.WalkFields{
		Name: "Te Paki Coastal Track", LengthInKm: 48, RegionID: seeded["NTL"].ID, DifficultyID: model.MediumDifficultyID,
	}})
	require.NoError(t, err)
	assert.Equal(t, "Northland", updated.Region.Name)
	assert.Equal(t, "Medium", updated.Difficulty.Name)

	require.NoError(t, svc.Delete(ctx, walk.ID))

	_, err = svc.Get(ctx, walk.ID)
	httpErr := asHTTPError(t, err)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Walk not found.", httpErr.Message)

	err = svc.Delete(ctx, walk.ID)
	assert.Equal(t, http.StatusNotFound, asHTTPError(t, err).Status)
}
