package web

import (
	"strconv"

	"github.com/deppfellow/carmarket/internal/errs"
	"github.com/deppfellow/carmarket/internal/model"
)

// Notices shown after a redirect, keyed by the ?notice= value.
var notices = map[string]string{
	"created": "Car added successfully!",
	"updated": "Car updated successfully!",
	"deleted": "Car deleted successfully!",
}

// Notice returns the message for a notice key, or "".
func Notice(key string) string {
	return notices[key]
}

// Field is one input of a rendered form.
type Field struct {
	Name     string
	Type     string
	Value    string
	Error    string
	Required bool
}

// Layout carries what every page shows around its content.
type Layout struct {
	Title  string
	Notice string
}

type CarsPage struct {
	Layout
	Cars      []model.Car
	LoadError string
	FormError string
	Fields    []Field
}

type EditPage struct {
	Layout
	ID     string
	Loaded bool
	Error  string
	Fields []Field
}

// DeletePage confirms a deletion. ID is the id from the route, which is what
// the confirm form posts back to.
type DeletePage struct {
	Layout
	ID         string
	Car        *model.Car
	Authorized bool
	Error      string
}

type SignupPage struct {
	Layout
	Fields  []Field
	Success string
	Message string
	Detail  string
}

// fieldErrors indexes validation errors by field name.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	if httpErr, ok := err.(*errs.HTTPError); ok {
		for _, fe := range httpErr.Errors {
			out[fe.Field] = fe.Error
		}
	}
	return out
}

func itoa(v int) string {
	return strconv.Itoa(v)
}

// CarFormFields lays out the "Add a New Car" form: the required text fields
// first, then the numbers, then the description.
func CarFormFields(in model.CarInput, err error) []Field {
	fe := fieldErrors(err)
	text := func(name, value string) Field {
		return Field{Name: name, Type: "text", Value: value, Error: fe[name], Required: true}
	}
	number := func(name, value string) Field {
		return Field{Name: name, Type: "number", Value: value, Error: fe[name]}
	}

	return []Field{
		text("make", in.Make),
		text("model", in.Model),
		text("color", in.Color),
		text("fuel_type", in.FuelType),
		text("transmission", in.Transmission),
		text("image", in.Image),
		number("year", itoa(in.Year)),
		number("price", strconv.FormatFloat(in.Price, 'f', -1, 64)),
		number("mileage", itoa(in.Mileage)),
		{Name: "description", Type: "textarea", Value: in.Description, Error: fe["description"]},
	}
}

// NewCarInput is the empty create form.
func NewCarInput() model.CarInput {
	return model.CarInput{Year: CurrentYear()}
}

// EditFormFields lays out the edit form.
func EditFormFields(edit model.CarEdit, err error) []Field {
	fe := fieldErrors(err)
	return []Field{
		{Name: "make", Type: "text", Value: edit.Make, Error: fe["make"], Required: true},
		{Name: "model", Type: "text", Value: edit.Model, Error: fe["model"], Required: true},
		{Name: "year", Type: "number", Value: itoa(edit.Year), Error: fe["year"], Required: true},
		{Name: "color", Type: "text", Value: edit.Color, Error: fe["color"], Required: true},
	}
}

// SignupFormFields lays out the signup form. Passwords are never echoed back.
func SignupFormFields(req model.SignupRequest, err error) []Field {
	fe := fieldErrors(err)
	return []Field{
		{Name: "username", Type: "text", Value: req.Username, Error: fe["username"], Required: true},
		{Name: "email", Type: "email", Value: req.Email, Error: fe["email"], Required: true},
		{Name: "password", Type: "password", Error: fe["password"], Required: true},
		{Name: "confirmed_password", Type: "password", Error: fe["confirmed_password"], Required: true},
	}
}
