package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/middleware"
	"github.com/deppfellow/carmarket/internal/model"
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/service"
)

type AuthHandler struct {
	Handler
	authService *service.AuthService
}

func NewAuthHandler(s *server.Server, authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler:     NewHandler(s),
		authService: authService,
	}
}

// Signup forwards the four signup fields to the upstream /register endpoint.
func (h *AuthHandler) Signup(c echo.Context, req *model.SignupRequest) (*upstream.Response, error) {
	return h.authService.Signup(c.Request().Context(), *req)
}

// Me returns the identity carried by the access token.
func (h *AuthHandler) Me(c echo.Context, _ *EmptyRequest) (*model.Me, error) {
	return h.authService.Me(middleware.GetToken(c))
}
