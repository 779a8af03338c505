// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the route groups, mapping the
// /api proxy routes, the HTML pages and the system endpoints to their
// handlers.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/handler"
	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/web"
)

// NewRouter builds the Echo instance with the global middleware chain and
// every route registered.
func NewRouter(s *server.Server, h *handler.Handlers) (*echo.Echo, error) {
	middlewares := middleware.NewMiddlewares(s)

	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page templates")
	}

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.Renderer = renderer
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// RequestID runs first; the logger and tracing attributes read it.
	router.Use(
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.Secure(),
		middlewares.Global.CORS(),
	)

	registerSystemRoutes(router, h)
	registerAPIRoutes(router, h, middlewares)
	registerWebRoutes(router, h)

	return router, nil
}
