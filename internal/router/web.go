package router

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/handler"
)

// registerWebRoutes registers the server-rendered pages.
func registerWebRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Web.Index)

	r.GET("/cars", h.Web.ListCars)
	r.POST("/cars", h.Web.CreateCar)

	r.GET("/cars/edit", h.Web.EditCar)
	r.POST("/cars/:id/edit", h.Web.UpdateCar)

	r.GET("/cars/:id/delete", h.Web.ConfirmDelete)
	r.POST("/cars/:id/delete", h.Web.DeleteCar)

	r.GET("/signup", h.Web.SignupForm)
	r.POST("/signup", h.Web.Signup)
}
