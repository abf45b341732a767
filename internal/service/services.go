// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// the (small) transformations each route needs, and calls
// repository methods where a lookup is required.
package service

import (
	"github.com/deppfellow/person-api/internal/repository"
	"github.com/deppfellow/person-api/internal/server"
)

type Services struct {
	Person  *PersonService
	Auth    *AuthService
	Contact *ContactService
	Upload  *UploadService
}

func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Person:  NewPersonService(s, repos.Person),
		Auth:    NewAuthService(s),
		Contact: NewContactService(s),
		Upload:  NewUploadService(s),
	}, nil
}
