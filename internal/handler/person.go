package handler

import (
	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/server"
	"github.com/deppfellow/person-api/internal/service"
	"github.com/labstack/echo/v4"
)

type PersonHandler struct {
	Handler
	personService *service.PersonService
}

func NewPersonHandler(s *server.Server, personService *service.PersonService) *PersonHandler {
	return &PersonHandler{
		Handler:       NewHandler(s),
		personService: personService,
	}
}

func (h *PersonHandler) Create(c echo.Context, req *model.Person) (model.PersonOut, error) {
	return h.personService.Create(req), nil
}

func (h *PersonHandler) Detail(c echo.Context, req *model.PersonDetailRequest) (map[string]string, error) {
	return h.personService.Detail(req), nil
}

func (h *PersonHandler) Show(c echo.Context, req *model.PersonIDRequest) (map[string]string, error) {
	return h.personService.Show(c.Request().Context(), req.ID)
}

func (h *PersonHandler) Update(c echo.Context, req *model.UpdatePersonRequest) (map[string]any, error) {
	return h.personService.Update(req.ID, req.Person, req.Location), nil
}
