package model

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their form names, e.g. "fuel_type".
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// SignupRequest is forwarded to the upstream /register endpoint field for field.
type SignupRequest struct {
	Username          string `json:"username" form:"username" validate:"required"`
	Email             string `json:"email" form:"email" validate:"required"`
	Password          string `json:"password" form:"password" validate:"required"`
	ConfirmedPassword string `json:"confirmed_password" form:"confirmed_password" validate:"required"`
}

// Validate satisfies validation.Validatable.
func (r *SignupRequest) Validate() error {
	return validate.Struct(r)
}

// Me is what the service knows about the caller, read from the token claims.
// The upstream stays authoritative; this is used for display and for hiding
// actions the upstream would refuse anyway.
type Me struct {
	SellerID string `json:"seller_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}
