package handler

import (
	"net/http"

	"github.com/deppfellow/person-api/internal/server"
	"github.com/labstack/echo/v4"
)

type HomeHandler struct {
	Handler
}

func NewHomeHandler(s *server.Server) *HomeHandler {
	return &HomeHandler{
		Handler: NewHandler(s),
	}
}

// Index answers the root path with a fixed greeting.
func (h *HomeHandler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"Hello": "World"})
}
