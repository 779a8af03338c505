package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of the
// marketplace itself: health, docs and their static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
