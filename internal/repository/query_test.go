package repository

import (
	"context"
	"math"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockPostgres(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestListOptionsPage(t *testing.T) {
	cases := []struct {
		name                 string
		number, size         int
		wantNumber, wantSize int
		wantOffset           int
	}{
		{"defaults", 0, 0, 1, 5, 0},
		{"negative", -3, -1, 1, 5, 0},
		{"explicit", 3, 10, 3, 10, 20},
		{"capped", 2, 1000, 2, MaxPageSize, MaxPageSize},
		{"huge page saturates", 1<<57 + 1, 100, 1<<57 + 1, 100, math.MaxInt},
		{"max page", math.MaxInt, 1, math.MaxInt, 1, math.MaxInt - 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := ListOptions{PageNumber: tc.number, PageSize: tc.size}
			number, size := opts.Page()
			assert.Equal(t, tc.wantNumber, number)
			assert.Equal(t, tc.wantSize, size)
			assert.Equal(t, tc.wantOffset, opts.Offset())
		})
	}
}

func TestRegionListPostgresSQL(t *testing.T) {
	db, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"id", "code", "name", "region_image_url"}).
		AddRow(uuid.NewString(), "CRB", "Cromwell Basin", nil)

	mock.ExpectQuery(`SELECT \* FROM "regions" WHERE "name" LIKE \$1 ESCAPE '\\' ORDER BY "name" DESC LIMIT .+ OFFSET .+`).
		WillReturnRows(rows)

	regions, err := NewRegionRepository(db).List(context.Background(), ListOptions{
		FilterOn:    "Name",
		FilterQuery: "well",
		SortBy:      "name",
		Ascending:   false,
		PageNumber:  2,
		PageSize:    3,
	})
	require.NoError(t, err)
	require.Len(t, regions, 1)
	assert.Equal(t, "Cromwell Basin", regions[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegionListPostgresSQLWithoutOptions(t *testing.T) {
	db, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT \* FROM "regions" LIMIT .+`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "region_image_url"}))

	regions, err := NewRegionRepository(db).List(context.Background(), ListOptions{FilterOn: "Name"})
	require.NoError(t, err)
	assert.Empty(t, regions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeEscaper(t *testing.T) {
	assert.Equal(t, `100\% \_pure\\`, likeEscaper.Replace(`100% _pure\`))
}
