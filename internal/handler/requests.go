package handler

import (
	"strings"

	"github.com/deppfellow/carmarket/internal/validation"
)

// EmptyRequest is the payload of routes that take no input.
type EmptyRequest struct{}

func (r *EmptyRequest) Validate() error {
	return nil
}

// CarIDRequest addresses one car by its path id.
type CarIDRequest struct {
	ID string `param:"id"`
}

func (r *CarIDRequest) Validate() error {
	var errs validation.CustomValidationErrors
	errs = appendIDError(errs, r.ID)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateCarRequest carries a car body that is relayed to the upstream untouched.
type CreateCarRequest struct {
	Body []byte `json:"-"`
}

func (r *CreateCarRequest) SetRawBody(body []byte) {
	r.Body = body
}

func (r *CreateCarRequest) Validate() error {
	var errs validation.CustomValidationErrors
	errs = appendBodyError(errs, r.Body)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateCarRequest is a relayed car body addressed by path id.
type UpdateCarRequest struct {
	ID   string `param:"id"`
	Body []byte `json:"-"`
}

func (r *UpdateCarRequest) SetRawBody(body []byte) {
	r.Body = body
}

func (r *UpdateCarRequest) Validate() error {
	var errs validation.CustomValidationErrors
	errs = appendIDError(errs, r.ID)
	errs = appendBodyError(errs, r.Body)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func appendIDError(errs validation.CustomValidationErrors, id string) validation.CustomValidationErrors {
	if strings.TrimSpace(id) == "" {
		errs = append(errs, validation.CustomValidationError{Field: "id", Message: "is required"})
	}
	return errs
}

func appendBodyError(errs validation.CustomValidationErrors, body []byte) validation.CustomValidationErrors {
	if !validation.IsJSONObject(body) {
		errs = append(errs, validation.CustomValidationError{Field: "body", Message: "must be a JSON object"})
	}
	return errs
}
