package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/deppfellow/person-api/internal/config"
	"github.com/deppfellow/person-api/internal/errs"
	"github.com/deppfellow/person-api/internal/handler"
	"github.com/deppfellow/person-api/internal/middleware"
	"github.com/deppfellow/person-api/internal/repository"
	"github.com/deppfellow/person-api/internal/server"
	"github.com/deppfellow/person-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, mutate func(cfg *config.Config)) *echo.Echo {
	t.Helper()

	cfg := config.Default()
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	s, err := server.New(cfg, &logger, nil)
	require.NoError(t, err)

	services, err := service.NewServices(s, repository.NewRepositories())
	require.NoError(t, err)

	return NewRouter(s, handler.NewHandlers(s, services))
}

func serve(r *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return req
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func decodeMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorFields(body errs.HTTPError) map[string]errs.FieldError {
	fields := make(map[string]errs.FieldError, len(body.Errors))
	for _, fe := range body.Errors {
		fields[fe.Field] = fe
	}
	return fields
}

const validPerson = `{
	"first_name": "Facundo",
	"last_name": "Loverte",
	"age": 21,
	"hair_color": "black",
	"is_married": false,
	"password": "123456789"
}`

func TestHome(t *testing.T) {
	rec := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"Hello":"World"}`, rec.Body.String())
}

func TestSystemRoutes(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("status", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/status", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeMap(t, rec)
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "development", body["environment"])
		assert.NotEmpty(t, body["timestamp"])
	})

	t.Run("docs", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/docs", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
		assert.Contains(t, rec.Body.String(), "/static/openapi.json")
	})

	t.Run("static openapi document", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/static/openapi.json", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeMap(t, rec)
		assert.Contains(t, body, "paths")
	})
}

func TestCreatePerson(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("valid person is echoed without password", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new", validPerson))

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.JSONEq(t, `{
			"first_name": "Facundo",
			"last_name": "Loverte",
			"age": 21,
			"hair_color": "black",
			"is_married": false
		}`, rec.Body.String())
	})

	t.Run("optional fields are null when absent", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new",
			`{"first_name":"Ana","last_name":"Diaz","age":30,"password":"supersecret"}`))

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeMap(t, rec)
		assert.Nil(t, body["hair_color"])
		assert.Nil(t, body["is_married"])
		assert.Contains(t, body, "hair_color")
		assert.NotContains(t, body, "password")
	})

	tests := []struct {
		name       string
		body       string
		field      string
		constraint string
	}{
		{"age zero", `{"first_name":"Ana","last_name":"Diaz","age":0,"password":"supersecret"}`, "age", "gt=0"},
		{"age above limit", `{"first_name":"Ana","last_name":"Diaz","age":116,"password":"supersecret"}`, "age", "lte=115"},
		{"first name too short", `{"first_name":"A","last_name":"Diaz","age":30,"password":"supersecret"}`, "first_name", "min=2"},
		{"last name too long", `{"first_name":"Ana","last_name":"` + strings.Repeat("x", 51) + `","age":30,"password":"supersecret"}`, "last_name", "max=50"},
		{"unknown hair color", `{"first_name":"Ana","last_name":"Diaz","age":30,"hair_color":"green","password":"supersecret"}`, "hair_color", "oneof=white black brown blonde red"},
		{"missing password", `{"first_name":"Ana","last_name":"Diaz","age":30}`, "password", "required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, jsonRequest(http.MethodPost, "/person/new", tt.body))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, "UNPROCESSABLE_ENTITY", body.Code)
			assert.True(t, body.Override)

			fe, ok := errorFields(body)[tt.field]
			require.True(t, ok, "expected an error for %s, got %+v", tt.field, body.Errors)
			assert.Equal(t, tt.constraint, fe.Constraint)
		})
	}

	t.Run("every failing field is reported", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new",
			`{"first_name":"A","last_name":"B","age":0,"password":"short"}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := errorFields(decodeError(t, rec))
		assert.Len(t, fields, 4)
		assert.Contains(t, fields, "first_name")
		assert.Contains(t, fields, "last_name")
		assert.Contains(t, fields, "age")
		assert.Contains(t, fields, "password")
	})

	t.Run("password value is never echoed", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new",
			`{"first_name":"Ana","last_name":"Diaz","age":30,"password":"short"}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.NotContains(t, rec.Body.String(), `"short"`)
		assert.Nil(t, errorFields(decodeError(t, rec))["password"].Value)
	})

	t.Run("wrong json type names the field", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new",
			`{"first_name":"Ana","last_name":"Diaz","age":"old","password":"supersecret"}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fe, ok := errorFields(decodeError(t, rec))["age"]
		require.True(t, ok)
		assert.Equal(t, "type=int", fe.Constraint)
	})

	t.Run("type error is reported with the other failing fields", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new",
			`{"first_name":"A","last_name":"B","age":"old","password":"short"}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		fields := errorFields(body)
		assert.Len(t, body.Errors, 4)
		assert.Equal(t, "type=int", fields["age"].Constraint)
		assert.Equal(t, "min=2", fields["first_name"].Constraint)
		assert.Equal(t, "min=2", fields["last_name"].Constraint)
		assert.Equal(t, "min=8", fields["password"].Constraint)
	})

	t.Run("form body is not accepted", func(t *testing.T) {
		rec := serve(r, formRequest("/person/new", url.Values{"first_name": {"Ana"}}))

		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/person/new", `{"first_name":`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, errorFields(decodeError(t, rec)), "body")
	})

	t.Run("empty body reports required fields", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/person/new", nil)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := serve(r, req)

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := errorFields(decodeError(t, rec))
		for _, field := range []string{"first_name", "last_name", "age", "password"} {
			assert.Equal(t, "required", fields[field].Constraint, field)
		}
	})
}

func TestPersonDetailQuery(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("name maps to age", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail?name=Ana&age=30", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"Ana":"30"}`, rec.Body.String())
	})

	t.Run("absent name keys null", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail?age=30", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"null":"30"}`, rec.Body.String())
	})

	t.Run("missing age", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail?name=Ana", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "required", errorFields(decodeError(t, rec))["age"].Constraint)
	})

	t.Run("short name", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail?name=A&age=30", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "min=2", errorFields(decodeError(t, rec))["name"].Constraint)
	})
}

func TestShowPerson(t *testing.T) {
	r := newTestRouter(t, nil)

	for _, id := range []string{"1", "2", "3", "4", "5"} {
		t.Run("known id "+id, func(t *testing.T) {
			rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail/"+id, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"`+id+`":"It exists!"}`, rec.Body.String())
		})
	}

	t.Run("unknown id", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail/6", nil))

		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeError(t, rec)
		assert.Equal(t, service.PersonNotFoundMessage, body.Message)
		assert.Equal(t, "NOT_FOUND", body.Code)
	})

	for _, id := range []string{"0", "-1"} {
		t.Run("non positive id "+id, func(t *testing.T) {
			rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail/"+id, nil))

			require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			assert.Equal(t, "gt=0", errorFields(decodeError(t, rec))["id"].Constraint)
		})
	}

	t.Run("non integer id", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/person/detail/abc", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "id", body.Errors[0].Field)
		assert.Equal(t, "type=int", body.Errors[0].Constraint)
		assert.Equal(t, "abc", body.Errors[0].Value)
	})
}

func TestUpdatePerson(t *testing.T) {
	r := newTestRouter(t, nil)

	location := `{"city":"Cordoba","state":"Cordoba","country":"Argentina"}`

	t.Run("merges person and location", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPut, "/person/5",
			`{"person":`+validPerson+`,"location":`+location+`}`))

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{
			"first_name": "Facundo",
			"last_name": "Loverte",
			"age": 21,
			"hair_color": "black",
			"is_married": false,
			"city": "Cordoba",
			"state": "Cordoba",
			"country": "Argentina"
		}`, rec.Body.String())
	})

	t.Run("nested errors carry their path", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPut, "/person/5",
			`{"person":{"first_name":"Ana","last_name":"Diaz","age":0,"password":"supersecret"},"location":{"city":"Cordoba","state":"Cordoba"}}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := errorFields(decodeError(t, rec))
		assert.Equal(t, "gt=0", fields["person.age"].Constraint)
		assert.Equal(t, "required", fields["location.country"].Constraint)
	})

	t.Run("missing location", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPut, "/person/5", `{"person":`+validPerson+`}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "required", errorFields(decodeError(t, rec))["location"].Constraint)
	})

	t.Run("path, type and validation errors are reported together", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPut, "/person/abc",
			`{"person":{"first_name":"Ana","age":30},"location":{"city":1}}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeError(t, rec)
		fields := errorFields(body)
		assert.Len(t, body.Errors, 6)
		assert.Equal(t, "type=int", fields["id"].Constraint)
		assert.Equal(t, "type=string", fields["location.city"].Constraint)
		assert.Equal(t, "required", fields["person.last_name"].Constraint)
		assert.Equal(t, "required", fields["person.password"].Constraint)
		assert.Equal(t, "required", fields["location.state"].Constraint)
		assert.Equal(t, "required", fields["location.country"].Constraint)
	})

	t.Run("path and body errors are reported together", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPut, "/person/0", `{"person":`+validPerson+`}`))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := errorFields(decodeError(t, rec))
		assert.Contains(t, fields, "id")
		assert.Contains(t, fields, "location")
	})
}

func TestLogin(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("success", func(t *testing.T) {
		rec := serve(r, formRequest("/login", url.Values{"username": {"facundo"}, "password": {"x"}}))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"username":"facundo","message":"Login Successfully!"}`, rec.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := serve(r, formRequest("/login", url.Values{}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fields := errorFields(decodeError(t, rec))
		assert.Equal(t, "required", fields["username"].Constraint)
		assert.Equal(t, "required", fields["password"].Constraint)
	})

	t.Run("json body is not accepted", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/login", `{"username":"bob","password":"x"}`))

		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
		assert.Equal(t, "UNSUPPORTED_MEDIA_TYPE", decodeError(t, rec).Code)
	})

	t.Run("username too long", func(t *testing.T) {
		rec := serve(r, formRequest("/login", url.Values{"username": {strings.Repeat("u", 21)}, "password": {"x"}}))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "max=20", errorFields(decodeError(t, rec))["username"].Constraint)
	})
}

func TestContact(t *testing.T) {
	r := newTestRouter(t, nil)

	valid := func() url.Values {
		return url.Values{
			"first_name": {"Facundo"},
			"last_name":  {"Loverte"},
			"email":      {"facundo@example.com"},
			"message":    {"Hello there, this is a long enough message."},
		}
	}

	t.Run("answers with the user agent", func(t *testing.T) {
		req := formRequest("/contact", valid())
		req.Header.Set("User-Agent", "test-agent/1.0")
		req.AddCookie(&http.Cookie{Name: "ads", Value: "yes"})
		rec := serve(r, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var ua string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ua))
		assert.Equal(t, "test-agent/1.0", ua)
	})

	t.Run("json body is not accepted", func(t *testing.T) {
		rec := serve(r, jsonRequest(http.MethodPost, "/contact", `{"email":"facundo@example.com"}`))

		require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("invalid email", func(t *testing.T) {
		form := valid()
		form.Set("email", "not-an-email")
		rec := serve(r, formRequest("/contact", form))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		fe := errorFields(decodeError(t, rec))["email"]
		assert.Equal(t, "email", fe.Constraint)
		assert.Equal(t, "not-an-email", fe.Value)
	})

	t.Run("short message", func(t *testing.T) {
		form := valid()
		form.Set("message", "too short")
		rec := serve(r, formRequest("/contact", form))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "min=20", errorFields(decodeError(t, rec))["message"].Constraint)
	})
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no file here"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/post-image", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestPostImage(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("describes the upload", func(t *testing.T) {
		rec := serve(r, multipartRequest(t, "image", "photo.png", bytes.Repeat([]byte{0xAB}, 2048)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"Filename":"photo.png","Format":"application/octet-stream","Size(kb)":2}`, rec.Body.String())
	})

	t.Run("size is rounded to two decimals", func(t *testing.T) {
		rec := serve(r, multipartRequest(t, "image", "tiny.png", make([]byte, 1000)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.InDelta(t, 0.98, decodeMap(t, rec)["Size(kb)"], 1e-9)
	})

	t.Run("missing image part", func(t *testing.T) {
		rec := serve(r, multipartRequest(t, "", "", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "required", errorFields(decodeError(t, rec))["image"].Constraint)
	})

	t.Run("not multipart", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodPost, "/post-image", nil))

		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "required", errorFields(decodeError(t, rec))["image"].Constraint)
	})
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(t, nil), httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Route not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestRequestIDHeader(t *testing.T) {
	r := newTestRouter(t, nil)

	t.Run("generated", func(t *testing.T) {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/person/detail/9", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-123")
		rec := serve(r, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
	})
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 1
		cfg.Server.RateBurst = 2
	})

	for i := 0; i < 2; i++ {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "limited-1")
	rec := serve(r, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "TOO_MANY_REQUESTS", decodeError(t, rec).Code)
	assert.Equal(t, "limited-1", rec.Header().Get(middleware.RequestIDHeader))

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRateLimitDisabled(t *testing.T) {
	r := newTestRouter(t, func(cfg *config.Config) {
		cfg.Server.RateLimit = 0
	})

	for i := 0; i < 100; i++ {
		rec := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}
