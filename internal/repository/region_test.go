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
	"gorm.io/gorm"
)

func seedListRegions(t *testing.T) (*repository.RegionRepository, map[string]*model.Region) {
	t.Helper()
	db := repositorytest.NewDB(t)
	regions := repositorytest.SeedRegions(t, db, map[string]string{
		"AKL": "Auckland",
		"WLG": "Wellington Region",
		"WGC": "Wellington City",
		"CRB": "Cromwell Basin",
		"NTL": "Northland",
		"PUR": "100% Pure",
	})
	return repository.NewRegionRepository(db), regions
}

func names(regions []model.Region) []string {
	out := make([]string, 0, len(regions))
	for _, r := range regions {
		out = append(out, r.Name)
	}
	return out
}

func TestRegionListFilterIsCaseSensitiveSubstring(t *testing.T) {
	repo, _ := seedListRegions(t)
	ctx := context.Background()

	got, err := repo.List(ctx, repository.ListOptions{FilterOn: "Name", FilterQuery: "well", Ascending: true, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cromwell Basin"}, names(got))

	got, err = repo.List(ctx, repository.ListOptions{FilterOn: "NAME", FilterQuery: "Well", SortBy: "name", Ascending: true, PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wellington City", "Wellington Region"}, names(got))
}

func TestRegionListEscapesWildcards(t *testing.T) {
	repo, _ := seedListRegions(t)

	got, err := repo.List(context.Background(), repository.ListOptions{FilterOn: "name", FilterQuery: "%", PageSize: 100})
	require.NoError(t, err)
	assert.Equal(t, []string{"100% Pure"}, names(got))
}

func TestRegionListIgnoresUnsupportedFields(t *testing.T) {
	repo, _ := seedListRegions(t)

	got, err := repo.List(context.Background(), repository.ListOptions{FilterOn: "code", FilterQuery: "AKL", SortBy: "code", PageSize: 100})
	require.NoError(t, err)
	assert.Len(t, got, 6)
}

func TestRegionListSortsAndPages(t *testing.T) {
	repo, _ := seedListRegions(t)
	ctx := context.Background()

	got, err := repo.List(ctx, repository.ListOptions{SortBy: "Name", Ascending: false, PageNumber: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Wellington Region", "Wellington City"}, names(got))

	got, err = repo.List(ctx, repository.ListOptions{SortBy: "Name", Ascending: true, PageNumber: 2, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Cromwell Basin", "Northland"}, names(got))

	got, err = repo.List(ctx, repository.ListOptions{SortBy: "Name", Ascending: true, PageNumber: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegionListClampsPaging(t *testing.T) {
	repo, _ := seedListRegions(t)

	got, err := repo.List(context.Background(), repository.ListOptions{SortBy: "name", Ascending: true, PageNumber: -1, PageSize: 0})
	require.NoError(t, err)
	assert.Len(t, got, repository.DefaultPageSize)
	assert.Equal(t, "100% Pure", got[0].Name)
}

func TestRegionListPageIsContiguousSlice(t *testing.T) {
	repo, _ := seedListRegions(t)
	ctx := context.Background()

	all, err := repo.List(ctx, repository.ListOptions{SortBy: "name", Ascending: true, PageSize: 100})
	require.NoError(t, err)

	for size := 1; size <= len(all)+1; size++ {
		for page := 1; (page-1)*size <= len(all); page++ {
			got, err := repo.List(ctx, repository.ListOptions{SortBy: "name", Ascending: true, PageNumber: page, PageSize: size})
			require.NoError(t, err)

			start := (page - 1) * size
			end := min(start+size, len(all))
			assert.LessOrEqual(t, len(got), size)
			assert.Equal(t, names(all[start:end]), names(got), "page %d size %d", page, size)
		}
	}

	got, err := repo.List(ctx, repository.ListOptions{SortBy: "name", Ascending: true, PageNumber: 1<<57 + 1, PageSize: 100})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegionCRUD(t *testing.T) {
	db := repositorytest.NewDB(t)
	repo := repository.NewRegionRepository(db)
	ctx := context.Background()

	region := &model.Region{Code: "WLG", Name: "Wellington Region"}
	require.NoError(t, repo.Create(ctx, region))
	require.NotEqual(t, uuid.Nil, region.ID)

	loaded, err := repo.GetByID(ctx, region.ID)
	require.NoError(t, err)
	assert.Equal(t, "WLG", loaded.Code)
	assert.Equal(t, "Wellington Region", loaded.Name)
	assert.Nil(t, loaded.RegionImageURL)

	imageURL := "https://images.example.com/wlg.jpg"
	loaded.Name = "Greater Wellington"
	loaded.RegionImageURL = &imageURL
	require.NoError(t, repo.Update(ctx, loaded))

	reloaded, err := repo.GetByID(ctx, region.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greater Wellington", reloaded.Name)
	require.NotNil(t, reloaded.RegionImageURL)
	assert.Equal(t, imageURL, *reloaded.RegionImageURL)

	require.NoError(t, repo.Delete(ctx, region.ID))
	assert.True(t, repository.IsNotFound(repo.Delete(ctx, region.ID)))

	_, err = repo.GetByID(ctx, region.ID)
	assert.True(t, repository.IsNotFound(err))
}

func TestRegionUpdateMissing(t *testing.T) {
	repo := repository.NewRegionRepository(repositorytest.NewDB(t))

	err := repo.Update(context.Background(), &model.Region{Base: model.Base{ID: uuid.New()}, Code: "XXX", Name: "Nowhere"})
	assert.True(t, repository.IsNotFound(err))
}

func TestRegionExistsWithCodeOrName(t *testing.T) {
	db := repositorytest.NewDB(t)
	regions := repositorytest.SeedRegions(t, db, map[string]string{"AKL": "Auckland", "WLG": "Wellington"})
	repo := repository.NewRegionRepository(db)
	ctx := context.Background()

	exists, err := repo.ExistsWithCodeOrName(ctx, "AKL", "Somewhere", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsWithCodeOrName(ctx, "ZZZ", "Wellington", uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsWithCodeOrName(ctx, "AKL", "Auckland", regions["AKL"].ID)
	require.NoError(t, err)
	assert.False(t, exists, "a region never conflicts with itself")

	exists, err = repo.ExistsWithCodeOrName(ctx, "AKL", "Wellington", regions["AKL"].ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRegionUniqueConstraintBackstop(t *testing.T) {
	repo := repository.NewRegionRepository(repositorytest.NewDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Region{Code: "AKL", Name: "Auckland"}))
	err := repo.Create(ctx, &model.Region{Code: "AKL", Name: "Auckland Two"})
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
