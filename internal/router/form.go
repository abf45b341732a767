package router

import (
	"net/http"

	"github.com/deppfellow/person-api/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerFormRoutes registers the form and multipart endpoints.
func registerFormRoutes(r *echo.Echo, h *handler.Handlers) {
	r.POST("/login", handler.Handle(h.Auth.Login, http.StatusOK))
	r.POST("/contact", handler.Handle(h.Contact.Submit, http.StatusOK))
	r.POST("/post-image", handler.HandleUpload(h.Upload.PostImage, http.StatusOK, handler.UploadFormField))
}
