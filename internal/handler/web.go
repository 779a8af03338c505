package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/model"
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/service"
	"github.com/deppfellow/carmarket/internal/upstreamerr"
	"github.com/deppfellow/carmarket/internal/validation"
	"github.com/deppfellow/carmarket/internal/web"
)

const (
	MsgCarNotFound       = "Car not found."
	MsgUpdateFailed      = "Failed to update car."
	MsgDeleteFailed      = "Failed to delete car"
	MsgIdentityUnknown   = "Unable to verify user identity"
	MsgNotAuthorized     = "You are not authorized to delete this car"
	MsgSignupSucceeded   = "Account created successfully! You can now log in."
	MsgFetchCarsFallback = "An error occurred while fetching cars"
)

// WebHandler renders the HTML pages. Unlike the /api routes it never rejects
// a request for a missing cookie: the upstream answers 401 and the page shows
// that message.
type WebHandler struct {
	Handler
	cars *service.CarService
	auth *service.AuthService
	mw   *middleware.AuthMiddleware
}

func NewWebHandler(s *server.Server, services *service.Services) *WebHandler {
	return &WebHandler{
		Handler: NewHandler(s),
		cars:    services.Cars,
		auth:    services.Auth,
		mw:      middleware.NewAuthMiddleware(s),
	}
}

// describe turns any service error into the status and message shown on a page.
func describe(err error) (int, *errs.HTTPError) {
	var httpErr *errs.HTTPError
	if !errors.As(upstreamerr.HandleError(err), &httpErr) {
		httpErr = errs.NewInternalServerError()
	}
	return httpErr.Status, httpErr
}

func (h *WebHandler) logFailure(c echo.Context, action string, err error) {
	middleware.GetLogger(c).Warn().
		Err(err).
		Str("action", action).
		Msg("page action failed")
}

func redirectWithNotice(c echo.Context, notice string) error {
	return c.Redirect(http.StatusSeeOther, "/cars?notice="+url.QueryEscape(notice))
}

func (h *WebHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/cars")
}

// ListCars renders the listing together with an empty "Add a New Car" form.
func (h *WebHandler) ListCars(c echo.Context) error {
	page := h.carsPage(c, web.CarFormFields(web.NewCarInput(), nil))
	return c.Render(http.StatusOK, web.PageCars, page)
}

func (h *WebHandler) carsPage(c echo.Context, fields []web.Field) *web.CarsPage {
	page := &web.CarsPage{
		Layout: web.Layout{Title: "Cars", Notice: web.Notice(c.QueryParam("notice"))},
		Fields: fields,
	}

	cars, err := h.cars.ListCars(c.Request().Context(), h.mw.Token(c))
	if err != nil {
		h.logFailure(c, "list_cars", err)
		_, httpErr := describe(err)
		page.LoadError = httpErr.Message
		if page.LoadError == "" {
			page.LoadError = MsgFetchCarsFallback
		}
		return page
	}

	page.Cars = cars
	return page
}

// CreateCar handles the "Add a New Car" form. Failures re-render the page
// with the submitted values.
func (h *WebHandler) CreateCar(c echo.Context) error {
	var in model.CarInput
	if err := validation.BindAndValidate(c, &in); err != nil {
		page := h.carsPage(c, web.CarFormFields(in, err))
		_, httpErr := describe(err)
		page.FormError = httpErr.Message
		return c.Render(http.StatusBadRequest, web.PageCars, page)
	}

	if _, err := h.cars.CreateCar(c.Request().Context(), h.mw.Token(c), in); err != nil {
		h.logFailure(c, "create_car", err)
		status, httpErr := describe(err)
		page := h.carsPage(c, web.CarFormFields(in, nil))
		page.FormError = httpErr.Message
		return c.Render(status, web.PageCars, page)
	}

	return redirectWithNotice(c, "created")
}

// EditCar is the two-stage edit page: a lookup form without ?id=, the edit
// form once the car is found.
func (h *WebHandler) EditCar(c echo.Context) error {
	id := strings.TrimSpace(c.QueryParam("id"))
	page := &web.EditPage{
		Layout: web.Layout{Title: "Edit Car"},
		ID:     id,
	}
	if id == "" {
		return c.Render(http.StatusOK, web.PageEdit, page)
	}

	car, err := h.cars.GetCar(c.Request().Context(), h.mw.Token(c), id)
	if err != nil {
		h.logFailure(c, "get_car", err)
		page.Error = MsgCarNotFound
		return c.Render(http.StatusOK, web.PageEdit, page)
	}

	page.Loaded = true
	page.Fields = web.EditFormFields(model.CarEdit{
		Make:  car.Make,
		Model: car.Model,
		Year:  car.Year,
		Color: car.Color,
	}, nil)

	return c.Render(http.StatusOK, web.PageEdit, page)
}

func (h *WebHandler) UpdateCar(c echo.Context) error {
	id := c.Param("id")
	page := &web.EditPage{
		Layout: web.Layout{Title: "Edit Car"},
		ID:     id,
		Loaded: true,
	}

	var edit model.CarEdit
	if err := validation.BindAndValidate(c, &edit); err != nil {
		page.Error = MsgUpdateFailed
		page.Fields = web.EditFormFields(edit, err)
		return c.Render(http.StatusBadRequest, web.PageEdit, page)
	}

	if _, err := h.cars.UpdateCar(c.Request().Context(), h.mw.Token(c), id, edit); err != nil {
		h.logFailure(c, "update_car", err)
		status, httpErr := describe(err)
		page.Error = MsgUpdateFailed + " " + httpErr.Message
		page.Fields = web.EditFormFields(edit, nil)
		return c.Render(status, web.PageEdit, page)
	}

	return redirectWithNotice(c, "updated")
}

// authorizeDelete loads the car and checks that the caller owns it. The
// returned page is ready to render either way.
func (h *WebHandler) authorizeDelete(c echo.Context) (*web.DeletePage, int) {
	page := &web.DeletePage{
		Layout: web.Layout{Title: "Delete Car"},
		ID:     c.Param("id"),
	}
	token := h.mw.Token(c)

	car, err := h.cars.GetCar(c.Request().Context(), token, page.ID)
	if err != nil {
		h.logFailure(c, "get_car", err)
		page.Error = MsgCarNotFound
		return page, http.StatusNotFound
	}
	page.Car = car

	me, err := h.auth.Me(token)
	if err != nil {
		page.Error = MsgIdentityUnknown
		return page, http.StatusUnauthorized
	}

	if !h.cars.CanDelete(car, me) {
		page.Error = MsgNotAuthorized
		return page, http.StatusForbidden
	}

	page.Authorized = true
	return page, http.StatusOK
}

func (h *WebHandler) ConfirmDelete(c echo.Context) error {
	page, status := h.authorizeDelete(c)
	return c.Render(status, web.PageDelete, page)
}

func (h *WebHandler) DeleteCar(c echo.Context) error {
	page, status := h.authorizeDelete(c)
	if !page.Authorized {
		return c.Render(status, web.PageDelete, page)
	}

	if err := h.cars.DeleteCar(c.Request().Context(), h.mw.Token(c), page.ID); err != nil {
		h.logFailure(c, "delete_car", err)
		status, httpErr := describe(err)
		page.Error = MsgDeleteFailed + ": " + httpErr.Message
		return c.Render(status, web.PageDelete, page)
	}

	return redirectWithNotice(c, "deleted")
}

func (h *WebHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, web.PageSignup, &web.SignupPage{
		Layout: web.Layout{Title: "Sign Up"},
		Fields: web.SignupFormFields(model.SignupRequest{}, nil),
	})
}

// Signup relays the form to the upstream /register endpoint and shows the
// upstream's message and error on failure.
func (h *WebHandler) Signup(c echo.Context) error {
	page := &web.SignupPage{Layout: web.Layout{Title: "Sign Up"}}

	var req model.SignupRequest
	if err := validation.BindAndValidate(c, &req); err != nil {
		_, httpErr := describe(err)
		page.Fields = web.SignupFormFields(req, err)
		page.Message = httpErr.Message
		return c.Render(http.StatusBadRequest, web.PageSignup, page)
	}

	if _, err := h.auth.Signup(c.Request().Context(), req); err != nil {
		h.logFailure(c, "signup", err)
		status, httpErr := describe(err)
		page.Fields = web.SignupFormFields(req, nil)
		page.Message = httpErr.Message
		page.Detail = httpErr.Detail
		return c.Render(status, web.PageSignup, page)
	}

	page.Success = MsgSignupSucceeded
	return c.Render(http.StatusOK, web.PageSignup, page)
}
