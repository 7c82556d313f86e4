package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "REGION", MakeUpperCaseWithUnderscores("Region"))
}

func TestNewDuplicateError(t *testing.T) {
	err := NewDuplicateError("Region", "Region already exists.")

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "REGION_ALREADY_EXISTS", err.Code)
	assert.Equal(t, "Region already exists.", err.Error())
	assert.True(t, err.Override)
}

func TestNewNotFoundErrorCustomCode(t *testing.T) {
	code := NotFoundCode("Walk")
	err := NewNotFoundError("Walk not found.", true, &code)

	assert.Equal(t, http.StatusNotFound, err.Status)
	assert.Equal(t, "WALK_NOT_FOUND", err.Code)
}

func TestNewInternalServerErrorHidesDetail(t *testing.T) {
	err := NewInternalServerError()

	assert.Equal(t, http.StatusInternalServerError, err.Status)
	assert.Equal(t, UnhandledMessage, err.Message)
	assert.False(t, err.Override)
}

func TestHTTPErrorIsMatchesType(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewForbiddenError("nope", false))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusForbidden, httpErr.Status)
}

func TestWithMessageCopies(t *testing.T) {
	base := NewValidationErrors("Validation failed", []FieldError{{Field: "code", Error: "is required"}})
	copied := base.WithMessage("Nope")

	assert.Equal(t, "Validation failed", base.Message)
	assert.Equal(t, "Nope", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
	assert.Equal(t, CodeValidationFailed, copied.Code)
}

func TestWithActionCopies(t *testing.T) {
	base := NewUnauthorizedError("Unauthorized", false)
	withAction := base.WithAction(&Action{Type: ActionTypeRedirect, Value: "/api/v1/auth/login"})

	assert.Nil(t, base.Action)
	require.NotNil(t, withAction.Action)
	assert.Equal(t, "UNAUTHORIZED", withAction.Code)
}
