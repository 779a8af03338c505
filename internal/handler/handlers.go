package handler

import (
	"github.com/deppfellow/carmarket/internal/server"
	"github.com/deppfellow/carmarket/internal/service"
)

// Handlers is a container that groups all HTTP handlers.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Car     *CarHandler
	Auth    *AuthHandler
	Web     *WebHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Car:     NewCarHandler(s, services.Cars),
		Auth:    NewAuthHandler(s, services.Auth),
		Web:     NewWebHandler(s, services),
	}
}
