package model

import "github.com/deppfellow/person-api/internal/validation"

// Location is where a person lives. All fields are required.
type Location struct {
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Country string `json:"country" validate:"required"`
}

func (l *Location) Validate() error {
	return validation.Struct(l)
}

// Fields returns the location as a flat mapping of wire names to values.
func (l Location) Fields() map[string]any {
	return map[string]any{
		"city":    l.City,
		"state":   l.State,
		"country": l.Country,
	}
}
