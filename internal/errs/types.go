package errs

import (
	"net/http"
)

// UnhandledMessage is the only text a client ever sees for a 500.
// The real cause stays in the server logs, keyed by the correlation id.
const UnhandledMessage = "Something went wrong. We are trying to resolve it."

// statusCode derives the default machine code from the status text:
// 404 => "Not Found" => "NOT_FOUND".
func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

func newHTTPError(status int, code *string, message string, override bool) *HTTPError {
	formattedCode := statusCode(status)

	// The caller is trusted to have formatted a custom code already.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   status,
		Override: override,
	}
}

// NewUnauthorizedError creates a 401 for a missing or rejected access token.
func NewUnauthorizedError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, nil, message, override)
}

// NewForbiddenError creates a 403 for a valid token that lacks a required role.
func NewForbiddenError(message string, override bool) *HTTPError {
	return newHTTPError(http.StatusForbidden, nil, message, override)
}

// NewTooManyRequestsError creates the 429 sent once a client exhausts its rate limit.
func NewTooManyRequestsError(message string) *HTTPError {
	return newHTTPError(http.StatusTooManyRequests, nil, message, true)
}

// NewBadRequestError creates a 400.
//
// code defaults to "BAD_REQUEST" when nil. errors carries field-level
// problems and action an optional client instruction; both may be nil.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError, action *Action) *HTTPError {
	httpErr := newHTTPError(http.StatusBadRequest, code, message, override)
	httpErr.Errors = errors
	httpErr.Action = action
	return httpErr
}

// NewNotFoundError creates a 404. code defaults to "NOT_FOUND" when nil.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return newHTTPError(http.StatusNotFound, code, message, override)
}

// NewDuplicateError creates the 400 returned when a write would break a
// uniqueness rule (a region code already taken, a username already registered).
//
// entity is the domain name used for the code, e.g. "Region" -> "REGION_ALREADY_EXISTS".
func NewDuplicateError(entity, message string) *HTTPError {
	code := DuplicateCode(entity)
	return NewBadRequestError(message, true, &code, nil, nil)
}

// NewInternalServerError creates the 500 every unclassified failure ends as.
// Its message never carries the real error.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, nil, UnhandledMessage, false)
}

// NewValidationErrors wraps an aggregated list of field errors into a single 400.
//
// Every violation found is reported together; callers collect first, fail once.
func NewValidationErrors(message string, fieldErrors []FieldError) *HTTPError {
	code := CodeValidationFailed
	return NewBadRequestError(message, true, &code, fieldErrors, nil)
}
