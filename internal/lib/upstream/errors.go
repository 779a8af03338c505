package upstream

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/pkg/errors"

	"github.com/deppfellow/carmarket/internal/lib/utils"
)

const snippetLength = 100

// ErrResponseTooLarge is returned when the upstream body exceeds the configured cap.
var ErrResponseTooLarge = errors.New("upstream response exceeds maximum length")

// Error is a non-2xx answer from the upstream API.
type Error struct {
	Status   int
	Resource string
	Message  string
	// Detail is the upstream "error" string, if any.
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream %s: %d: %s", e.Resource, e.Status, e.Message)
}

// NonJSONError is returned when the upstream answers with a body that is not JSON,
// typically an HTML error page from a load balancer.
type NonJSONError struct {
	Status  int
	Snippet string
}

func (e *NonJSONError) Error() string {
	return "Received non-JSON response: " + e.Snippet
}

func snippet(data []byte) string {
	return utils.Truncate(string(data), snippetLength)
}

// IsTimeout reports whether err is a deadline or client timeout.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsConnectionFailure reports whether err happened in transport, before any
// response arrived.
func IsConnectionFailure(err error) bool {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
