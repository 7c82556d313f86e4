// Package errs define custom error types and utilities.
//
// Its purpose is to create specific error structures
// (e.g. FieldErrors for forms or HTTPError for API responses)
// so the client receives meaningful, actionable and consistent
// error messages, whatever resource it is talking to.
package errs

import "fmt"

// Common machine-readable codes used by the resource services.
//
// The "<DOMAIN>_<ACTION>" convention matches what sqlerr generates
// from constraint violations, so a duplicate caught by a lookup and
// a duplicate caught by a unique index look the same to the client.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeInvalidLogin     = "INVALID_CREDENTIALS"
)

// DuplicateCode builds "<ENTITY>_ALREADY_EXISTS", e.g. "REGION_ALREADY_EXISTS".
func DuplicateCode(entity string) string {
	return fmt.Sprintf("%s_ALREADY_EXISTS", MakeUpperCaseWithUnderscores(entity))
}

// NotFoundCode builds "<ENTITY>_NOT_FOUND", e.g. "WALK_NOT_FOUND".
func NotFoundCode(entity string) string {
	return fmt.Sprintf("%s_NOT_FOUND", MakeUpperCaseWithUnderscores(entity))
}
