package handler

import (
	"reflect"
	"time"

	"github.com/deppfellow/nzwalks/internal/errs"
	"github.com/deppfellow/nzwalks/internal/middleware"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/deppfellow/nzwalks/internal/validation"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"
)

// Handler holds the dependencies shared by every concrete handler.
type Handler struct {
	server *server.Server
}

func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// HandlerFunc is a typed endpoint: it receives a bound and validated
// request and returns the response body or an error.
//
// Req is a pointer to a request struct, e.g. *dto.CreateRegionRequest.
type HandlerFunc[Req validation.Validatable, Res any] func(c echo.Context, req Req) (Res, error)

// ResponseHandler writes a successful result.
type ResponseHandler interface {
	Handle(c echo.Context, result any) error

	// GetOperation names the response kind in logs.
	GetOperation() string
}

// JSONResponseHandler writes JSON responses with a given status code.
type JSONResponseHandler struct {
	status int
}

func (h JSONResponseHandler) Handle(c echo.Context, result any) error {
	return c.JSON(h.status, result)
}

func (h JSONResponseHandler) GetOperation() string {
	return "handler"
}

// newRequest allocates a zero request value of the pointer type Req.
// A fresh value per request keeps concurrent requests from binding into
// the same struct.
func newRequest[Req validation.Validatable]() Req {
	var zero Req
	return reflect.New(reflect.TypeOf(zero).Elem()).Interface().(Req)
}

// requestTrace times the phases of one request and reports each of them
// as "<phase>.status" and "<phase>.duration_ms" transaction attributes.
type requestTrace struct {
	txn    *newrelic.Transaction
	logger zerolog.Logger
	start  time.Time
}

func newRequestTrace(c echo.Context, operation string) *requestTrace {
	route := c.Path()

	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	return &requestTrace{
		txn: txn,
		logger: middleware.GetLogger(c).With().
			Str("operation", operation).
			Str("route", route).
			Logger(),
		start: time.Now(),
	}
}

// run executes fn as the named phase and returns how long it took.
func (rt *requestTrace) run(phase string, fn func() error) (time.Duration, error) {
	phaseStart := time.Now()
	err := fn()
	elapsed := time.Since(phaseStart)

	if rt.txn != nil {
		status := "success"
		if err != nil {
			status = "failed"
		}
		rt.txn.AddAttribute(phase+".status", status)
		rt.txn.AddAttribute(phase+".duration_ms", elapsed.Milliseconds())
	}
	return elapsed, err
}

// handleRequest binds and validates a fresh Req, calls handler and writes
// the result. Returned errors are left to the global error handler.
func handleRequest[Req validation.Validatable](
	c echo.Context,
	handler func(c echo.Context, req Req) (any, error),
	responseHandler ResponseHandler,
) error {
	trace := newRequestTrace(c, responseHandler.GetOperation())
	trace.logger.Debug().Msg("handling request")

	req := newRequest[Req]()

	validationDuration, err := trace.run("validation", func() error {
		return validation.BindAndValidate(c, req)
	})
	if err != nil {
		trace.logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")
		return err
	}

	var result any
	handlerDuration, err := trace.run("handler", func() error {
		var handlerErr error
		result, handlerErr = handler(c, req)
		return handlerErr
	})

	totalDuration := time.Since(trace.start)
	if trace.txn != nil {
		trace.txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
	}

	if err != nil {
		trace.logger.Warn().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")
		return err
	}

	trace.logger.Info().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle adapts a typed handler into an echo.HandlerFunc that writes its
// result as JSON with status.
//
//	g.POST("/create-region", handler.Handle(h.Region.CreateRegion, http.StatusCreated))
func Handle[Req validation.Validatable, Res any](handler HandlerFunc[Req, Res], status int) echo.HandlerFunc {
	return func(c echo.Context) error {
		return handleRequest(c, func(c echo.Context, req Req) (any, error) {
			return handler(c, req)
		}, JSONResponseHandler{status: status})
	}
}

// parseID converts an already validated id string.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("Invalid id", false, nil, nil, nil)
	}
	return id, nil
}

// requestBaseURL is the scheme and host the request arrived on.
func requestBaseURL(c echo.Context) string {
	return c.Scheme() + "://" + c.Request().Host
}
