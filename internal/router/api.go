package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/handler"
	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/model"
)

// registerAPIRoutes registers the JSON proxy routes under /api. Everything
// except signup needs the access token cookie.
func registerAPIRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	api := r.Group("/api", mw.Global.BodyLimit(), mw.RateLimit.Limit())

	api.POST("/signup", handler.HandleRelay(h.Auth.Handler, h.Auth.Signup, &model.SignupRequest{}))

	protected := api.Group("", mw.Auth.RequireToken)

	protected.GET("/me", handler.Handle(h.Auth.Handler, h.Auth.Me, http.StatusOK, &handler.EmptyRequest{}))

	cars := protected.Group("/cars")
	cars.GET("", handler.HandleRelay(h.Car.Handler, h.Car.ListCars, &handler.EmptyRequest{}))
	cars.POST("", handler.HandleRelay(h.Car.Handler, h.Car.CreateCar, &handler.CreateCarRequest{}))
	cars.GET("/:id", handler.HandleRelay(h.Car.Handler, h.Car.GetCar, &handler.CarIDRequest{}))
	cars.PUT("/:id", handler.HandleRelay(h.Car.Handler, h.Car.UpdateCar, &handler.UpdateCarRequest{}))
	cars.DELETE("/:id", handler.HandleRelay(h.Car.Handler, h.Car.DeleteCar, &handler.CarIDRequest{}))
}
