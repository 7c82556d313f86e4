// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FailedMessage is the default message for a 400 carrying field errors.
const FailedMessage = "Validation failed"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns validator.ValidationErrors, CustomValidationErrors, or nil.
type Validatable interface {
	Validate() error
}

// FileBinder is implemented by payloads that read multipart files, which
// echo's Bind does not populate.
type FileBinder interface {
	BindFiles(c echo.Context) error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return FailedMessage
}

// Add appends a violation for field.
func (c *CustomValidationErrors) Add(field, message string) {
	*c = append(*c, CustomValidationError{Field: field, Message: message})
}

// OrNil returns nil when nothing was collected, so callers can `return errs.OrNil()`.
func (c CustomValidationErrors) OrNil() error {
	if len(c) == 0 {
		return nil
	}
	return c
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their wire name so errors line up with the request.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "param", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Struct runs the tag rules on s.
func Struct(s any) error {
	return validate.Struct(s)
}

// Collect converts any validation error into CustomValidationErrors so tag
// violations and hand-written checks can be reported together.
func Collect(err error) CustomValidationErrors {
	if err == nil {
		return nil
	}

	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		return custom
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		out := make(CustomValidationErrors, 0, len(validationErrors))
		for _, fe := range validationErrors {
			out = append(out, CustomValidationError{Field: fe.Field(), Message: TagMessage(fe)})
		}
		return out
	}

	return CustomValidationErrors{{Field: "", Message: err.Error()}}
}

// BindAndValidate binds request data into payload and validates it.
//
// payload must be a pointer. Bind failures (malformed JSON, type mismatch)
// and validation failures both become 400 *errs.HTTPError.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if fb, ok := payload.(FileBinder); ok {
		if err := fb.BindFiles(c); err != nil {
			return bindError(err)
		}
	}

	if fieldErrors := FieldErrors(payload.Validate()); fieldErrors != nil {
		return errs.NewValidationErrors(FailedMessage, fieldErrors)
	}

	return nil
}

func bindError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	message := "Invalid request payload"
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			message = msg
		}
	}
	return errs.NewBadRequestError(message, false, nil, nil, nil)
}

// FieldErrors flattens a validation error into the response shape.
// It returns nil for a nil error.
func FieldErrors(err error) []errs.FieldError {
	collected := Collect(err)
	if collected == nil {
		return nil
	}

	fieldErrors := make([]errs.FieldError, 0, len(collected))
	for _, ce := range collected {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: ce.Field,
			Error: ce.Message,
		})
	}
	return fieldErrors
}

// TagMessage renders one failed tag as a user-facing sentence fragment.
func TagMessage(err validator.FieldError) string {
	isString := err.Kind() == reflect.String

	switch err.Tag() {
	case "required":
		return "is required"

	case "len":
		if isString {
			return fmt.Sprintf("must be exactly %s characters", err.Param())
		}
		return fmt.Sprintf("must have exactly %s items", err.Param())

	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", err.Param())
		}
		return fmt.Sprintf("must be at least %s", err.Param())

	case "max":
		if isString {
			return fmt.Sprintf("must not exceed %s characters", err.Param())
		}
		return fmt.Sprintf("must not exceed %s", err.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", err.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())

	case "email":
		return "must be a valid email address"

	case "url", "http_url":
		return "must be a valid URL"

	case "uuid", "uuid4":
		return "must be a valid UUID"

	case "boolean":
		return "must be true or false"

	case "excludesall":
		return fmt.Sprintf("must not contain any of: %s", err.Param())

	case "dive":
		return "some items are invalid"

	default:
		if err.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", err.Field(), err.Tag(), err.Param())
		}
		return fmt.Sprintf("%s: %s", err.Field(), err.Tag())
	}
}
