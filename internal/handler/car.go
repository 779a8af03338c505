package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/service"
)

// CarHandler serves the /api/cars proxy routes. Every method relays the
// upstream answer; errors are mapped by the global error handler.
type CarHandler struct {
	Handler
	carService *service.CarService
}

func NewCarHandler(s *server.Server, carService *service.CarService) *CarHandler {
	return &CarHandler{
		Handler:    NewHandler(s),
		carService: carService,
	}
}

func (h *CarHandler) ListCars(c echo.Context, _ *EmptyRequest) (*upstream.Response, error) {
	return h.carService.RelayList(c.Request().Context(), middleware.GetToken(c))
}

func (h *CarHandler) GetCar(c echo.Context, req *CarIDRequest) (*upstream.Response, error) {
	return h.carService.RelayGet(c.Request().Context(), middleware.GetToken(c), req.ID)
}

func (h *CarHandler) CreateCar(c echo.Context, req *CreateCarRequest) (*upstream.Response, error) {
	return h.carService.RelayCreate(c.Request().Context(), middleware.GetToken(c), req.Body)
}

func (h *CarHandler) UpdateCar(c echo.Context, req *UpdateCarRequest) (*upstream.Response, error) {
	return h.carService.RelayUpdate(c.Request().Context(), middleware.GetToken(c), req.ID, req.Body)
}

func (h *CarHandler) DeleteCar(c echo.Context, req *CarIDRequest) (*upstream.Response, error) {
	return h.carService.RelayDelete(c.Request().Context(), middleware.GetToken(c), req.ID)
}
