// Package service contains the business logic.
//
// It sits between the handler and repository layers. For the proxy routes it
// only relays upstream answers; for the web UI it decodes them into model
// types, merges edits and gates actions the caller is not allowed to take.
package service

import (
	"github.com/deppfellow/carmarket/internal/repository"
	"github.com/deppfellow/carmarket/internal/server"
)

type Services struct {
	Cars *CarService
	Auth *AuthService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Cars: NewCarService(repos.Cars),
		Auth: NewAuthService(repos.Accounts),
	}, nil
}
