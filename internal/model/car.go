package model

import "encoding/json"

// Car is a listing as the upstream API returns it.
type Car struct {
	ID           string  `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	Price        float64 `json:"price"`
	Mileage      int     `json:"mileage"`
	Description  string  `json:"description"`
	Color        string  `json:"color"`
	FuelType     string  `json:"fuel_type"`
	Transmission string  `json:"transmission"`
	Image        string  `json:"image"`

	SellerID  *string `json:"seller_id,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
	IsSold    *bool   `json:"is_sold,omitempty"`
}

// Seller returns the seller id, or "" when the upstream did not send one.
func (c *Car) Seller() string {
	if c.SellerID == nil {
		return ""
	}
	return *c.SellerID
}

// CarInput is the editable part of a Car, bound from the "Add a New Car" form.
type CarInput struct {
	Make         string  `json:"make" form:"make" validate:"required"`
	Model        string  `json:"model" form:"model" validate:"required"`
	Year         int     `json:"year" form:"year" validate:"required"`
	Price        float64 `json:"price" form:"price"`
	Mileage      int     `json:"mileage" form:"mileage"`
	Description  string  `json:"description" form:"description"`
	Color        string  `json:"color" form:"color" validate:"required"`
	FuelType     string  `json:"fuel_type" form:"fuel_type" validate:"required"`
	Transmission string  `json:"transmission" form:"transmission" validate:"required"`
	Image        string  `json:"image" form:"image" validate:"required"`
}

// Validate satisfies validation.Validatable.
func (c *CarInput) Validate() error {
	return validate.Struct(c)
}

// Input returns the editable fields of c.
func (c *Car) Input() CarInput {
	return CarInput{
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		Price:        c.Price,
		Mileage:      c.Mileage,
		Description:  c.Description,
		Color:        c.Color,
		FuelType:     c.FuelType,
		Transmission: c.Transmission,
		Image:        c.Image,
	}
}

// CarEdit is the reduced edit form: only these four fields can be changed
// from the UI.
type CarEdit struct {
	Make  string `form:"make" validate:"required"`
	Model string `form:"model" validate:"required"`
	Year  int    `form:"year" validate:"required"`
	Color string `form:"color" validate:"required"`
}

// Validate satisfies validation.Validatable.
func (e *CarEdit) Validate() error {
	return validate.Struct(e)
}

// Apply merges the edited fields into a copy of the car's editable record.
func (e CarEdit) Apply(c *Car) CarInput {
	in := c.Input()
	in.Make = e.Make
	in.Model = e.Model
	in.Year = e.Year
	in.Color = e.Color
	return in
}

// createEnvelope is the shape some upstream deployments use for POST /cars.
type createEnvelope struct {
	Car *Car `json:"car"`
}

// DecodeCreated reads a create response that is either {"car": {...}} or a
// bare car object.
func DecodeCreated(body []byte) (*Car, error) {
	var env createEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Car != nil {
		return env.Car, nil
	}

	var car Car
	if err := json.Unmarshal(body, &car); err != nil {
		return nil, err
	}
	return &car, nil
}
