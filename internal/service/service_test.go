package service_test

import (
	"errors"
	"testing"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/repository"
	"github.com/deppfellow/nzwalks/internal/repository/repositorytest"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRepos(t *testing.T) (*repository.Repositories, *gorm.DB) {
	t.Helper()
	db := repositorytest.NewDB(t)
	return repository.New(db), db
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T: %v", err, err)
	return httpErr
}

func fieldMessages(httpErr *errs.HTTPError, field string) []string {
	var out []string
	for _, fe := range httpErr.Errors {
		if fe.Field == field {
			out = append(out, fe.Error)
		}
	}
	return out
}
