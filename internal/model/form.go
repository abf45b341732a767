package model

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/deppfellow/person-api/internal/validation"
	"github.com/labstack/echo/v4"
)

// LoginSuccessMessage is the fixed message returned by POST /login.
const LoginSuccessMessage = "Login Successfully!"

// formMediaTypes are the bodies accepted by the form routes.
var formMediaTypes = []string{echo.MIMEApplicationForm, echo.MIMEMultipartForm}

// LoginRequest is the form of POST /login. The password is required but
// its strength is not checked here.
type LoginRequest struct {
	Username string `form:"username" validate:"required,max=20"`
	Password string `form:"password" validate:"required"`
}

func (r *LoginRequest) MediaTypes() []string { return formMediaTypes }

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

// LoginResult is the response of POST /login.
type LoginResult struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

// ContactRequest is the form of POST /contact, plus the User-Agent header
// and the optional "ads" cookie.
type ContactRequest struct {
	FirstName string `form:"first_name" validate:"required,min=1,max=20"`
	LastName  string `form:"last_name" validate:"required,min=1,max=20"`
	Email     string `form:"email" validate:"required,email"`
	Message   string `form:"message" validate:"required,min=20"`

	UserAgent string  `header:"User-Agent"`
	Ads       *string `cookie:"ads"`
}

func (r *ContactRequest) BindParams(c echo.Context) error {
	r.UserAgent = c.Request().UserAgent()

	cookie, err := c.Cookie("ads")
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil
		}
		return err
	}
	r.Ads = &cookie.Value

	return nil
}

func (r *ContactRequest) MediaTypes() []string { return formMediaTypes }

func (r *ContactRequest) Validate() error {
	return validation.Struct(r)
}

// UploadImageRequest is the multipart form of POST /post-image.
type UploadImageRequest struct {
	Image *multipart.FileHeader
}

func (r *UploadImageRequest) BindParams(c echo.Context) error {
	image, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return validation.CustomValidationErrors{{
				Field:      "image",
				Message:    "is required",
				Constraint: "required",
			}}
		}
		return validation.CustomValidationErrors{{
			Field:      "image",
			Message:    err.Error(),
			Constraint: "file",
		}}
	}
	r.Image = image

	return nil
}

func (r *UploadImageRequest) Validate() error {
	return nil
}

// ImageInfo describes an uploaded image. Its JSON keys are capitalized.
type ImageInfo struct {
	Filename string  `json:"Filename"`
	Format   string  `json:"Format"`
	SizeKB   float64 `json:"Size(kb)"`
}

func (i ImageInfo) FileName() string { return i.Filename }

func (i ImageInfo) FileSizeKB() float64 { return i.SizeKB }
