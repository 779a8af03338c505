package upstreamerr

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/lib/upstream"
)

// generateErrorCode creates machine codes from the resource and upstream status.
//
// Output format:
//
//	<DOMAIN>_<ACTION>
//
// Example:
//
//	cars + 404 => CAR_NOT_FOUND
func generateErrorCode(resource string, status int) string {
	if resource == "" {
		resource = "RECORD"
	}

	domain := strings.ToUpper(singular(resource))

	action := "ERROR"
	switch status {
	case http.StatusNotFound:
		action = "NOT_FOUND"
	case http.StatusConflict:
		action = "ALREADY_EXISTS"
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		action = "INVALID"
	case http.StatusUnauthorized:
		action = "UNAUTHORIZED"
	case http.StatusForbidden:
		action = "FORBIDDEN"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// singular crudely drops a trailing "s": "cars" -> "car".
func singular(s string) string {
	if strings.HasSuffix(s, "s") && len(s) > 1 {
		return s[:len(s)-1]
	}
	return s
}

// humanizeText converts snake_case into Title Case.
//
//	"fuel_type" -> "Fuel Type"
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// formatUserFriendlyMessage is used when neither the upstream nor the caller
// supplied a message.
func formatUserFriendlyMessage(upErr *upstream.Error) string {
	entity := humanizeText(singular(upErr.Resource))
	if entity == "" {
		entity = "Record"
	}

	switch upErr.Status {
	case http.StatusNotFound:
		return fmt.Sprintf("%s not found", entity)
	case http.StatusConflict:
		return fmt.Sprintf("%s already exists", entity)
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusForbidden:
		return fmt.Sprintf("You are not allowed to modify this %s", strings.ToLower(entity))
	default:
		return "An error occurred while processing your request"
	}
}

// HandleError converts a failed upstream call into an application-level error.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *upstream.Error: same status, upstream message, resource-derived code
//   - timeouts: 504
//   - *upstream.NonJSONError, oversized bodies, connection failures: 502
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		message := upErr.Message
		if message == "" {
			message = formatUserFriendlyMessage(upErr)
		}

		code := generateErrorCode(upErr.Resource, upErr.Status)
		out := errs.NewUpstreamError(upErr.Status, message, &code)
		out.Detail = upErr.Detail
		return out
	}

	var nonJSON *upstream.NonJSONError
	if errors.As(err, &nonJSON) {
		return errs.NewBadGatewayError(nonJSON.Error())
	}

	switch {
	case errors.Is(err, upstream.ErrResponseTooLarge):
		return errs.NewBadGatewayError("Upstream response exceeds maximum length")
	case upstream.IsTimeout(err):
		return errs.NewGatewayTimeoutError("Upstream request timed out")
	case upstream.IsConnectionFailure(err):
		return errs.NewBadGatewayError("Upstream service unavailable")
	}

	return errs.NewInternalServerError()
}
