// Package model holds the request and response shapes of the API.
//
// Request payloads carry `validate` tags and implement validation.Validatable,
// so the handler pipeline can bind and check them before any service runs.
// They are plain values: built per request, never mutated afterwards.
package model

import (
	"github.com/deppfellow/person-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// HairColor is the closed set of accepted hair colors.
type HairColor string

const (
	HairColorWhite  HairColor = "white"
	HairColorBlack  HairColor = "black"
	HairColorBrown  HairColor = "brown"
	HairColorBlonde HairColor = "blonde"
	HairColorRed    HairColor = "red"
)

// HairColors lists every valid HairColor.
var HairColors = []HairColor{HairColorWhite, HairColorBlack, HairColorBrown, HairColorBlonde, HairColorRed}

// Valid reports whether h is one of HairColors.
func (h HairColor) Valid() bool {
	for _, color := range HairColors {
		if h == color {
			return true
		}
	}
	return false
}

// PersonOut is the public view of a person. It never carries the password.
//
// Optional fields serialize as null when absent.
type PersonOut struct {
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Age       int        `json:"age"`
	HairColor *HairColor `json:"hair_color"`
	IsMarried *bool      `json:"is_married"`
}

// Person is the write model: the public fields plus the write-only password.
//
// Example:
//
//	{"first_name": "Facundo", "last_name": "Loverte", "age": 21,
//	 "hair_color": "black", "is_married": false, "password": "123456789"}
type Person struct {
	FirstName string     `json:"first_name" validate:"required,min=2,max=50"`
	LastName  string     `json:"last_name" validate:"required,min=2,max=50"`
	Age       *int       `json:"age" validate:"required,gt=0,lte=115"`
	HairColor *HairColor `json:"hair_color" validate:"omitnil,oneof=white black brown blonde red"`
	IsMarried *bool      `json:"is_married"`
	Password  string     `json:"password" validate:"required,min=8"`
}

// jsonMediaTypes are the bodies accepted by the person routes.
var jsonMediaTypes = []string{echo.MIMEApplicationJSON}

func (p *Person) MediaTypes() []string { return jsonMediaTypes }

func (p *Person) Validate() error {
	return validation.Struct(p)
}

// Public returns the person without its password.
func (p *Person) Public() PersonOut {
	out := PersonOut{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		HairColor: p.HairColor,
		IsMarried: p.IsMarried,
	}
	if p.Age != nil {
		out.Age = *p.Age
	}
	return out
}

// PersonDetailRequest is the query of GET /person/detail.
type PersonDetailRequest struct {
	// Name is nil when the query parameter is absent.
	Name *string `query:"name" validate:"omitnil,min=2,max=50"`
	Age  string  `query:"age" validate:"required"`
}

func (r *PersonDetailRequest) BindParams(c echo.Context) error {
	if c.QueryParams().Has("name") {
		name := c.QueryParam("name")
		r.Name = &name
	}
	r.Age = c.QueryParam("age")
	return nil
}

func (r *PersonDetailRequest) Validate() error {
	return validation.Struct(r)
}

// PersonIDRequest is the path of GET /person/detail/{id}.
type PersonIDRequest struct {
	ID int `param:"id" validate:"gt=0"`
}

func (r *PersonIDRequest) BindParams(c echo.Context) error {
	return validation.BindErrors(echo.PathParamsBinder(c).MustInt("id", &r.ID).BindErrors())
}

func (r *PersonIDRequest) Validate() error {
	return validation.Struct(r)
}

// UpdatePersonRequest is PUT /person/{id}: a path id plus a body holding
// both records, {"person": {...}, "location": {...}}.
type UpdatePersonRequest struct {
	ID       int       `json:"-" param:"id" validate:"gt=0"`
	Person   *Person   `json:"person" validate:"required"`
	Location *Location `json:"location" validate:"required"`
}

func (r *UpdatePersonRequest) BindParams(c echo.Context) error {
	return validation.BindErrors(echo.PathParamsBinder(c).MustInt("id", &r.ID).BindErrors())
}

func (r *UpdatePersonRequest) MediaTypes() []string { return jsonMediaTypes }

func (r *UpdatePersonRequest) Validate() error {
	return validation.Struct(r)
}

// Fields returns the person as a flat mapping of wire names to values.
func (p PersonOut) Fields() map[string]any {
	return map[string]any{
		"first_name": p.FirstName,
		"last_name":  p.LastName,
		"age":        p.Age,
		"hair_color": p.HairColor,
		"is_married": p.IsMarried,
	}
}
