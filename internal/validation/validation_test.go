package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type regionPayload struct {
	Code string `json:"code" validate:"required,len=3"`
	Name string `json:"name" validate:"required,max=100"`
}

func (p *regionPayload) Validate() error {
	return Struct(p)
}

type filePayload struct {
	Name  string `form:"fileName" validate:"required"`
	bound bool
}

func (p *filePayload) Validate() error {
	var problems CustomValidationErrors
	problems = append(problems, Collect(Struct(p))...)
	if !p.bound {
		problems.Add("file", "is required")
	}
	return problems.OrNil()
}

func (p *filePayload) BindFiles(echo.Context) error {
	p.bound = true
	return nil
}

func newContext(method, body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, contentType)
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestBindAndValidateCollectsEveryFieldError(t *testing.T) {
	c := newContext(http.MethodPost, `{"code":"AK","name":""}`, echo.MIMEApplicationJSON)

	httpErr := asHTTPError(t, BindAndValidate(c, &regionPayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, errs.CodeValidationFailed, httpErr.Code)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "code", Error: "must be exactly 3 characters"},
		{Field: "name", Error: "is required"},
	}, httpErr.Errors)
}

func TestBindAndValidateMalformedBody(t *testing.T) {
	c := newContext(http.MethodPost, `{"code":`, echo.MIMEApplicationJSON)

	httpErr := asHTTPError(t, BindAndValidate(c, &regionPayload{}))

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.NotEmpty(t, httpErr.Message)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidateSuccess(t *testing.T) {
	c := newContext(http.MethodPost, `{"code":"AKL","name":"Auckland"}`, echo.MIMEApplicationJSON)

	payload := &regionPayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, "AKL", payload.Code)
}

func TestBindAndValidateCallsFileBinder(t *testing.T) {
	c := newContext(http.MethodPost, "fileName=track", echo.MIMEApplicationForm)

	payload := &filePayload{}
	require.NoError(t, BindAndValidate(c, payload))
	assert.True(t, payload.bound)
}

func TestCollectMergesTagAndCustomErrors(t *testing.T) {
	err := (&filePayload{}).Validate()

	fieldErrors := FieldErrors(err)
	assert.Equal(t, []errs.FieldError{
		{Field: "fileName", Error: "is required"},
		{Field: "file", Error: "is required"},
	}, fieldErrors)
}

func TestFieldErrorsNil(t *testing.T) {
	assert.Nil(t, FieldErrors(nil))
	assert.Nil(t, CustomValidationErrors{}.OrNil())
}
