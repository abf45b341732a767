package router

import (
	"net/http"

	"github.com/deppfellow/person-api/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerPersonRoutes(r *echo.Echo, h *handler.Handlers) {
	person := r.Group("/person")

	person.POST("/new", handler.Handle(h.Person.Create, http.StatusCreated))
	person.GET("/detail", handler.Handle(h.Person.Detail, http.StatusOK))
	person.GET("/detail/:id", handler.Handle(h.Person.Show, http.StatusOK))
	person.PUT("/:id", handler.Handle(h.Person.Update, http.StatusAccepted))
}
