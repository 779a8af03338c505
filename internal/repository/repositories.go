// Package repository handles all interactions with the upstream car API.
//
// Each repository maps one upstream resource onto typed methods and turns
// non-2xx answers into *upstream.Error with the operation's default message,
// so the service layer never has to look at raw status codes.
package repository

import (
	"github.com/deppfellow/carmarket/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Cars     *CarRepository
	Accounts *AccountRepository
}

// NewRepositories constructs the repository container on top of the server's
// upstream client.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Cars:     NewCarRepository(s.Upstream),
		Accounts: NewAccountRepository(s.Upstream),
	}
}
