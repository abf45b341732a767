package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores("Unprocessable Entity"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("Not Found"))
}

func TestConstructors(t *testing.T) {
	custom := "PERSON_MISSING"

	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"unprocessable", NewUnprocessableEntityError("invalid", true, nil, nil), http.StatusUnprocessableEntity, "UNPROCESSABLE_ENTITY"},
		{"not found", NewNotFoundError("missing", false, nil), http.StatusNotFound, "NOT_FOUND"},
		{"not found custom code", NewNotFoundError("missing", false, &custom), http.StatusNotFound, custom},
		{"too many requests", NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.status, tc.err.Status)
			assert.Equal(t, tc.code, tc.err.Code)
		})
	}
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("age out of range"))

	assert.Equal(t, http.StatusUnprocessableEntity, err.Status)
	assert.Equal(t, "Validation failed: age out of range", err.Error())
}

func TestHTTPErrorIs(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", NewNotFoundError("missing", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestWithMessage(t *testing.T) {
	base := NewUnprocessableEntityError("Validation failed", true, nil, []FieldError{{Field: "age", Error: "is required"}})
	copied := base.WithMessage("Invalid person")

	assert.Equal(t, "Validation failed", base.Message)
	assert.Equal(t, "Invalid person", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
	assert.Equal(t, base.Status, copied.Status)
}
