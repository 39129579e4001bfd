package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

var startTime = time.Now()

const serviceVersion = "1.0.0"

// Pinger is a backing service that can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthReporter is the generation client's configuration check
type HealthReporter interface {
	IsHealthy() bool
}

// HealthDeps are the dependencies probed by the readiness and status checks.
// Nil members are reported as disabled.
type HealthDeps struct {
	Store   Pinger
	LLM     HealthReporter
	Redis   Pinger
	Storage Pinger
}

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	logging.GetGlobalLogger().Debug("Health check requested", map[string]interface{}{"request_id": requestID(c)})

	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	})
}

// ReadinessHandler reports 503 until the store answers and the generation client is configured
func ReadinessHandler(deps HealthDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()
		logger.Debug("Readiness check requested", map[string]interface{}{"request_id": requestID(c)})

		checks, ok := deps.run(c.Request().Context())

		status, code := "ready", http.StatusOK
		if !ok {
			status, code = "not_ready", http.StatusServiceUnavailable
			logger.Warn("Readiness check failed", map[string]interface{}{
				"request_id": requestID(c),
				"checks":     checks,
			})
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   serviceVersion,
		Uptime:    time.Since(startTime),
	})
}

// StatusHandler reports every dependency check without failing the request
func StatusHandler(deps HealthDeps) echo.HandlerFunc {
	return func(c echo.Context) error {
		checks, ok := deps.run(c.Request().Context())
		checks["api"] = "operational"

		status := "operational"
		if !ok {
			status = "degraded"
		}

		return c.JSON(http.StatusOK, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   serviceVersion,
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// run probes each dependency. Redis and the export bucket are optional, so
// their failure does not make the service unready.
func (d HealthDeps) run(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	checks := map[string]string{"api": "ok"}
	ok := true

	switch {
	case d.Store == nil:
		checks["store"] = "disabled"
	case d.Store.Ping(ctx) != nil:
		checks["store"] = "unavailable"
		ok = false
	default:
		checks["store"] = "ok"
	}

	switch {
	case d.LLM == nil:
		checks["llm"] = "disabled"
	case !d.LLM.IsHealthy():
		checks["llm"] = "unconfigured"
		ok = false
	default:
		checks["llm"] = "ok"
	}

	checks["redis"] = optionalCheck(ctx, d.Redis)
	checks["storage"] = optionalCheck(ctx, d.Storage)

	return checks, ok
}

func optionalCheck(ctx context.Context, p Pinger) string {
	switch {
	case p == nil:
		return "disabled"
	case p.Ping(ctx) != nil:
		return "unavailable"
	default:
		return "ok"
	}
}
