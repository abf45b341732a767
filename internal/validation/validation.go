// Package validation contains the logic for binding and validating
// request data.
//
// It uses the `validator` library to enforce rules (like
// required fields, lengths, ranges or email formats) defined in struct tags
// and extracts validation errors into a format the client can
// understand.
package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nameTags are the struct tags a field's wire name is read from, in order.
// A "-" value is skipped so a field hidden from JSON can still be named
// by its path or query tag.
var nameTags = []string{"json", "form", "query", "param", "header", "cookie"}

// validate is shared by every payload; validator caches struct metadata
// and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire names ("first_name") instead of Go names ("FirstName").
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range nameTags {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return v
}

// Struct validates s against its `validate` tags and returns
// validator.ValidationErrors holding every failing field.
func Struct(s any) error {
	return validate.Struct(s)
}
