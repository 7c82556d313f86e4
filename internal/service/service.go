// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/nzwalks/internal/errs"
)

func notFound(entity string) error {
	code := errs.NotFoundCode(entity)
	return errs.NewNotFoundError(entity+" not found.", true, &code)
}
