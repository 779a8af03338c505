package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/server"
)

// HealthHandler serves /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
}

func NewHealthHandler(s *server.Server) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
	}
}

// CheckHealth reports overall status and the configured dependency checks.
//
// It returns:
//   - 200 OK if all checks pass
//   - 503 Service Unavailable if any check fails
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      make(map[string]interface{}),
	}

	checks := response["checks"].(map[string]interface{})
	isHealthy := true

	cfg := h.server.Config.Observability.HealthChecks
	if cfg.Enabled {
		for _, name := range cfg.Checks {
			if name != "upstream" {
				logger.Warn().Str("check", name).Msg("unknown health check skipped")
				continue
			}

			ctx, cancel := context.WithTimeout(c.Request().Context(), cfg.Timeout)
			upstreamStart := time.Now()
			status, err := h.server.Upstream.Ping(ctx)
			cancel()
			elapsed := time.Since(upstreamStart)

			if err != nil {
				checks["upstream"] = map[string]interface{}{
					"status":        "unhealthy",
					"response_time": elapsed.String(),
					"error":         err.Error(),
				}
				isHealthy = false

				logger.Error().
					Err(err).
					Dur("response_time", elapsed).
					Msg("upstream health check failed")

				h.recordFailure(map[string]interface{}{
					"check_type":       "upstream",
					"operation":        "health_check",
					"error_type":       "upstream_unreachable",
					"response_time_ms": elapsed.Milliseconds(),
					"error_message":    err.Error(),
				})
				continue
			}

			checks["upstream"] = map[string]interface{}{
				"status":        "healthy",
				"status_code":   status,
				"response_time": elapsed.String(),
			}

			logger.Info().
				Int("status_code", status).
				Dur("response_time", elapsed).
				Msg("upstream health check passed")
		}
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return errors.Wrap(err, "failed to write JSON response")
	}

	return nil
}

// recordFailure sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordFailure(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}
