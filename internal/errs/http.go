package errs

import "strings"

// FieldError is one problem with one request field:
//
//	{ "field": "code", "error": "must be exactly 3 characters" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// ActionType tells the client what kind of follow-up Action.Value holds.
type ActionType string

const (
	// ActionTypeRedirect means Value is a path the client should go to.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional hint about what the client should do next, such as
// logging in again after a 401.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the body of every error response.
//
//   - Code: machine-friendly, e.g. "REGION_ALREADY_EXISTS".
//   - Message: for people, e.g. "Region not found.".
//   - Override: the error handler may replace Message.
//   - Errors: every field problem found, never just the first.
//   - ID: correlation id, set only on 500s so support can find the log line.
type HTTPError struct {
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Status   int          `json:"status"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors"`
	Action   *Action      `json:"action"`
	ID       string       `json:"id,omitempty"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is matches any *HTTPError, whatever its status or code, so
// errors.Is(err, &HTTPError{}) asks "was this already classified?".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a copy of e carrying message instead.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	clone := *e
	clone.Message = message
	return &clone
}

// WithAction returns a copy of e carrying action.
func (e *HTTPError) WithAction(action *Action) *HTTPError {
	clone := *e
	clone.Action = action
	return &clone
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
