package handler

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/deppfellow/nzwalks/internal/middleware"
	"github.com/deppfellow/nzwalks/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"

	defaultHealthTimeout = 5 * time.Second
)

type HealthCheck struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]HealthCheck `json:"checks"`
}

// healthProbe pings one dependency. A failing optional probe is reported
// but leaves the service healthy.
type healthProbe struct {
	name     string
	optional bool
	ping     func(ctx context.Context) error
}

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// probes lists the configured checks whose dependency exists. Redis only
// backs the welcome email queue, so it is optional.
func (h *HealthHandler) probes() []healthProbe {
	obs := h.server.Config.Observability
	if obs != nil && !obs.HealthChecks.Enabled {
		return nil
	}

	wanted := func(name string) bool {
		return obs == nil || len(obs.HealthChecks.Checks) == 0 || slices.Contains(obs.HealthChecks.Checks, name)
	}

	var probes []healthProbe
	if db := h.server.DB; db != nil && db.Pool != nil && wanted("database") {
		probes = append(probes, healthProbe{name: "database", ping: db.Pool.Ping})
	}
	if rdb := h.server.Redis; rdb != nil && wanted("redis") {
		probes = append(probes, healthProbe{name: "redis", optional: true, ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}
	return probes
}

func (h *HealthHandler) timeout() time.Duration {
	if obs := h.server.Config.Observability; obs != nil && obs.HealthChecks.Timeout > 0 {
		return obs.HealthChecks.Timeout
	}
	return defaultHealthTimeout
}

func (h *HealthHandler) recordFailure(checkType string, responseTime time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       checkType + "_unhealthy",
		"response_time_ms": responseTime.Milliseconds(),
		"error_message":    err.Error(),
	})
}

// CheckHealth answers 200 when every required dependency responds and 503
// otherwise, with a per-dependency breakdown either way.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      StatusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      map[string]HealthCheck{},
	}

	for _, probe := range h.probes() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout())
		probeStart := time.Now()
		err := probe.ping(ctx)
		elapsed := time.Since(probeStart)
		cancel()

		check := HealthCheck{Status: StatusHealthy, ResponseTime: elapsed.String()}
		if err != nil {
			check.Status = StatusUnhealthy
			check.Error = err.Error()
			if !probe.optional {
				response.Status = StatusUnhealthy
			}

			logger.Error().
				Err(err).
				Str("check", probe.name).
				Dur("response_time", elapsed).
				Msg("health check failed")
			h.recordFailure(probe.name, elapsed, err)
		}
		response.Checks[probe.name] = check
	}

	if response.Status != StatusHealthy {
		logger.Warn().Dur("total_duration", time.Since(start)).Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Debug().Dur("total_duration", time.Since(start)).Msg("health check passed")
	return c.JSON(http.StatusOK, response)
}
