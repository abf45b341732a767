package handler

import (
	"github.com/deppfellow/person-api/internal/server"
	"github.com/deppfellow/person-api/internal/service"
)

// Handlers groups all HTTP handlers so the router receives a single value.
type Handlers struct {
	Health  *HealthHandler  // Health serves the liveness endpoint.
	OpenAPI *OpenAPIHandler // OpenAPI serves the API documentation UI.
	Home    *HomeHandler
	Person  *PersonHandler
	Auth    *AuthHandler
	Contact *ContactHandler
	Upload  *UploadHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Home:    NewHomeHandler(s),
		Person:  NewPersonHandler(s, services.Person),
		Auth:    NewAuthHandler(s, services.Auth),
		Contact: NewContactHandler(s, services.Contact),
		Upload:  NewUploadHandler(s, services.Upload),
	}
}
