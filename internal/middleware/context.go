package middleware

import (
	"net"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carmarket/internal/lib/upstream"
	"github.com/deppfellow/carmarket/internal/logger"
	"github.com/deppfellow/carmarket/internal/server"
)

// LoggerKey is used as the key for storing the request-scoped logger.
const LoggerKey = "logger"

// ContextEnhancer enriches each request with:
//   - a request-scoped logger (request_id, method, path, ip, trace ids)
//   - the upstream.Caller, so upstream calls carry the request id and the
//     X-Forwarded-For chain
type ContextEnhancer struct {
	server *server.Server
}

func NewContextEnhancer(s *server.Server) *ContextEnhancer {
	return &ContextEnhancer{server: s}
}

// EnhanceContext returns an Echo middleware. It must run after RequestID and
// the New Relic middleware.
func (ce *ContextEnhancer) EnhanceContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := GetRequestID(c)
			req := c.Request()

			contextLogger := ce.server.Logger.With().
				Str("request_id", requestID).
				Str("method", req.Method).
				Str("path", c.Path()).
				Str("ip", c.RealIP()).
				Logger()

			if txn := newrelic.FromContext(req.Context()); txn != nil {
				contextLogger = logger.WithTraceContext(contextLogger, txn)
			}

			c.Set(LoggerKey, &contextLogger)

			ctx := upstream.WithCaller(req.Context(), upstream.Caller{
				RequestID:    requestID,
				ForwardedFor: upstream.ForwardedFor(req.Header.Values("X-Forwarded-For"), remoteIP(c)),
			})
			c.SetRequest(req.WithContext(ctx))

			return next(c)
		}
	}
}

// remoteIP is the direct peer address, without the port.
func remoteIP(c echo.Context) string {
	host, _, err := net.SplitHostPort(c.Request().RemoteAddr)
	if err != nil {
		return ""
	}
	return host
}

// GetLogger retrieves the request-scoped logger from Echo context.
//
// If EnhanceContext middleware didn't run, it returns a no-op logger.
func GetLogger(c echo.Context) *zerolog.Logger {
	if logger, ok := c.Get(LoggerKey).(*zerolog.Logger); ok {
		return logger
	}

	logger := zerolog.Nop()
	return &logger
}
