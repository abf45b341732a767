package handler

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/deppfellow/person-api/internal/server"
	"github.com/deppfellow/person-api/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIUIFile is the documentation page inside the docs filesystem.
const OpenAPIUIFile = "openapi.html"

// OpenAPIHandler serves the OpenAPI UI. The page loads its JS from a CDN and
// reads openapi.json from /static.
type OpenAPIHandler struct {
	Handler
	docs fs.FS
}

// NewOpenAPIHandler serves the UI from the embedded static assets.
func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return NewOpenAPIHandlerFS(s, static.FS)
}

// NewOpenAPIHandlerFS serves the UI from docs.
func NewOpenAPIHandlerFS(s *server.Server, docs fs.FS) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
		docs:    docs,
	}
}

// ServeOpenAPIUI writes openapi.html with caching disabled.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	templateBytes, err := fs.ReadFile(h.docs, OpenAPIUIFile)

	c.Response().Header().Set("Cache-Control", "no-cache")

	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	if err := c.HTML(http.StatusOK, string(templateBytes)); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}

	return nil
}
