package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/server"
)

// TokenKey is where RequireToken stores the access token in Echo context.
const TokenKey = "access_token"

// AuthMiddleware reads the upstream-issued access token from the cookie. It
// never validates the token; the upstream API does that on every call.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// Token returns the cookie's token, or "" when the cookie is missing or empty.
func (auth *AuthMiddleware) Token(c echo.Context) string {
	cookie, err := c.Cookie(auth.server.Config.Auth.CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// RequireToken rejects requests without the access token cookie with a 401
// {"message": "Unauthorized"} and otherwise stores the token under TokenKey.
func (auth *AuthMiddleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		token := auth.Token(c)
		if token == "" {
			GetLogger(c).Warn().
				Str("function", "RequireToken").
				Dur("duration", time.Since(start)).
				Msg("missing access token cookie")

			return errs.NewUnauthorizedError("Unauthorized", false)
		}

		c.Set(TokenKey, token)

		return next(c)
	}
}

// GetToken returns the token stored by RequireToken.
func GetToken(c echo.Context) string {
	if token, ok := c.Get(TokenKey).(string); ok {
		return token
	}
	return ""
}
