package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/deppfellow/person-api/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required,email"`)
//   - Implement Validate() error that runs validation.Struct(req)
//   - Return validator.ValidationErrors (or CustomValidationErrors for custom cases)
type Validatable interface {
	Validate() error
}

// ParamsBinder is implemented by payloads that read values from outside the
// request body: path params, query params, headers, cookies or multipart files.
//
// BindParams should use echo's ValueBinder and return BindErrors(...) so that
// conversion failures keep the name of the offending field.
type ParamsBinder interface {
	BindParams(c echo.Context) error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field      string
	Message    string
	Value      any
	Constraint string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

// MediaTypeRestricted is implemented by payloads whose body may only arrive
// in the listed media types, e.g. echo.MIMEApplicationForm.
type MediaTypeRestricted interface {
	MediaTypes() []string
}

// bodyBinder only reads the body; every other source goes through ParamsBinder.
var bodyBinder = &echo.DefaultBinder{}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. payload.BindParams(c), if implemented, reads path/query/header/cookie values.
//  2. The body (JSON, form or multipart) is decoded into payload.
//  3. payload.Validate() applies validation rules.
//
// Failures from all three steps are collected into one 422 *errs.HTTPError,
// so the client sees every problem at once. A field that already failed to
// bind is not reported a second time by Validate. Only a body that cannot be
// decoded at all stops before validation.
//
// A body in a media type the payload does not accept is answered with 415.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := checkMediaType(c, payload); err != nil {
		return err
	}

	var fieldErrors []errs.FieldError

	if binder, ok := payload.(ParamsBinder); ok {
		if err := binder.BindParams(c); err != nil {
			var custom CustomValidationErrors
			if !errors.As(err, &custom) {
				return err
			}
			fieldErrors = append(fieldErrors, convertCustomErrors(custom)...)
		}
	}

	if err := bodyBinder.BindBody(c, payload); err != nil {
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) && httpErr.Code == http.StatusUnsupportedMediaType {
			return err
		}

		fieldErrors = append(fieldErrors, bodyFieldError(err))

		// A type mismatch leaves the rest of the body decoded, so it can still be validated.
		if !isFieldTypeError(err) {
			return errs.NewUnprocessableEntityError("Validation failed", true, nil, fieldErrors)
		}
	}

	if _, validationErrors := validateStruct(payload); validationErrors != nil {
		reported := make(map[string]bool, len(fieldErrors))
		for _, fe := range fieldErrors {
			reported[fe.Field] = true
		}

		for _, fe := range validationErrors {
			if !reported[fe.Field] {
				fieldErrors = append(fieldErrors, fe)
			}
		}
	}

	if len(fieldErrors) > 0 {
		return errs.NewUnprocessableEntityError("Validation failed", true, nil, fieldErrors)
	}

	return nil
}

// checkMediaType rejects a non-empty body whose Content-Type the payload does not accept.
func checkMediaType(c echo.Context, payload Validatable) error {
	restricted, ok := payload.(MediaTypeRestricted)
	if !ok || c.Request().ContentLength == 0 {
		return nil
	}

	ctype := c.Request().Header.Get(echo.HeaderContentType)
	for _, mediaType := range restricted.MediaTypes() {
		if strings.HasPrefix(ctype, mediaType) {
			return nil
		}
	}

	return echo.ErrUnsupportedMediaType
}

// isFieldTypeError reports whether err is a JSON value of the wrong type for
// a named field. The decoder keeps going after such an error.
func isFieldTypeError(err error) bool {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		err = httpErr.Internal
	}

	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field != ""
}

// BindErrors converts the errors collected by an echo.ValueBinder into
// CustomValidationErrors. It returns nil when there are none.
func BindErrors(bindErrs []error) error {
	if len(bindErrs) == 0 {
		return nil
	}

	custom := make(CustomValidationErrors, 0, len(bindErrs))
	for _, err := range bindErrs {
		var bindingErr *echo.BindingError
		if !errors.As(err, &bindingErr) {
			custom = append(custom, CustomValidationError{Field: "request", Message: err.Error()})
			continue
		}

		// ValueBinder reports a missing Must* value with no values at all.
		if len(bindingErr.Values) == 0 {
			custom = append(custom, CustomValidationError{
				Field:      bindingErr.Field,
				Message:    "is required",
				Constraint: "required",
			})
			continue
		}

		// Messages look like "failed to bind field value to int".
		target := strings.TrimPrefix(fmt.Sprint(bindingErr.Message), "failed to bind field value to ")
		custom = append(custom, CustomValidationError{
			Field:      bindingErr.Field,
			Message:    "must be a valid " + target,
			Value:      strings.Join(bindingErr.Values, ","),
			Constraint: "type=" + target,
		})
	}

	return custom
}

// bodyFieldError describes a body that could not be decoded.
func bodyFieldError(err error) errs.FieldError {
	internal := err
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		internal = httpErr.Internal
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(internal, &typeErr) {
		field := typeErr.Field
		if field == "" {
			field = "body"
		}
		return errs.FieldError{
			Field:      field,
			Error:      fmt.Sprintf("must be of type %s, got %s", typeErr.Type, typeErr.Value),
			Constraint: "type=" + typeErr.Type.String(),
		}
	}

	var syntaxErr *json.SyntaxError
	if errors.As(internal, &syntaxErr) {
		return errs.FieldError{
			Field: "body",
			Error: fmt.Sprintf("invalid JSON at offset %d: %s", syntaxErr.Offset, syntaxErr.Error()),
		}
	}

	message := internal.Error()
	if httpErr != nil {
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	return errs.FieldError{Field: "body", Error: message}
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) (string, []errs.FieldError) {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return "", nil
}

func convertCustomErrors(custom CustomValidationErrors) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(custom))
	for _, err := range custom {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:      err.Field,
			Error:      err.Message,
			Value:      redact(err.Field, err.Value),
			Constraint: err.Constraint,
		})
	}
	return fieldErrors
}

func extractValidationError(err error) (string, []errs.FieldError) {
	var custom CustomValidationErrors
	if errors.As(err, &custom) {
		return "Validation failed", convertCustomErrors(custom)
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Validation failed", []errs.FieldError{{Field: "request", Error: err.Error()}}
	}

	fieldErrors := make([]errs.FieldError, 0, len(validationErrors))

	// Convert validator.ValidationErrors into user-friendly messages.
	for _, err := range validationErrors {
		field := fieldPath(err.Namespace())
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			// min tag means:
			// - for strings: minimum length
			// - for numbers: minimum value
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "gt":
			msg = fmt.Sprintf("must be greater than %s", err.Param())

		case "gte":
			msg = fmt.Sprintf("must be greater than or equal to %s", err.Param())

		case "lt":
			msg = fmt.Sprintf("must be less than %s", err.Param())

		case "lte":
			msg = fmt.Sprintf("must be less than or equal to %s", err.Param())

		case "oneof":
			msg = fmt.Sprintf("must be one of: %s", err.Param())

		case "email":
			msg = "must be a valid email address"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("%s: %s:%s", field, err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("%s: %s", field, err.Tag())
			}
		}

		constraint := err.Tag()
		if err.Param() != "" {
			constraint += "=" + err.Param()
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field:      field,
			Error:      msg,
			Value:      redact(field, rejectedValue(err)),
			Constraint: constraint,
		})
	}

	return "Validation failed", fieldErrors
}

// fieldPath drops the root struct name from a validator namespace:
// "UpdatePersonRequest.person.age" -> "person.age".
func fieldPath(namespace string) string {
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return namespace
}

// rejectedValue returns the value that failed, or nil when the field was absent.
func rejectedValue(err validator.FieldError) any {
	if err.Tag() == "required" {
		return nil
	}
	return err.Value()
}

// redact hides write-only values.
func redact(field string, value any) any {
	if strings.HasSuffix(field, "password") {
		return nil
	}
	return value
}
