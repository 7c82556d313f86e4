package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// RequestIDHeader carries the correlation id in both directions.
	RequestIDHeader = echo.HeaderXRequestID

	// RequestIDKey is where the id lives in the Echo context.
	RequestIDKey = "request_id"
)

// RequestID makes sure every request has a correlation id.
//
// An upstream id is reused only when it is a UUID, normalized to its
// canonical form; anything else is replaced by a fresh one. The id is echoed
// back in the response header and is the id a client sees in the body of a 500.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := uuid.NewString()
			if upstream, err := uuid.Parse(c.Request().Header.Get(RequestIDHeader)); err == nil && upstream != uuid.Nil {
				requestID = upstream.String()
			}

			c.Set(RequestIDKey, requestID)
			c.Response().Header().Set(RequestIDHeader, requestID)

			return next(c)
		}
	}
}

// GetRequestID returns "" when RequestID did not run.
func GetRequestID(c echo.Context) string {
	if requestID, ok := c.Get(RequestIDKey).(string); ok {
		return requestID
	}
	return ""
}
