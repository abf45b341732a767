package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/deppfellow/person-api/internal/errs"
	"github.com/deppfellow/person-api/internal/model"
	"github.com/deppfellow/person-api/internal/repository"
	"github.com/deppfellow/person-api/internal/server"
)

// PersonNotFoundMessage is returned when a person id is not known.
const PersonNotFoundMessage = "This person doesn't exist"

// PersonExistsMessage is the value reported for a known person id.
const PersonExistsMessage = "It exists!"

// nullKey stands in for a missing name; it is how a null map key serializes in JSON.
const nullKey = "null"

type PersonService struct {
	server *server.Server
	people repository.PersonRepository
}

func NewPersonService(s *server.Server, people repository.PersonRepository) *PersonService {
	return &PersonService{
		server: s,
		people: people,
	}
}

// Create echoes a new person back without its password.
func (ps *PersonService) Create(person *model.Person) model.PersonOut {
	return person.Public()
}

// Detail maps the optional name to the age.
func (ps *PersonService) Detail(req *model.PersonDetailRequest) map[string]string {
	key := nullKey
	if req.Name != nil {
		key = *req.Name
	}
	return map[string]string{key: req.Age}
}

// Show confirms that the person with id exists.
func (ps *PersonService) Show(ctx context.Context, id int) (map[string]string, error) {
	ok, err := ps.people.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to look up person %d: %w", id, err)
	}
	if !ok {
		return nil, errs.NewNotFoundError(PersonNotFoundMessage, false, nil)
	}

	return map[string]string{strconv.Itoa(id): PersonExistsMessage}, nil
}

// Update merges the public person fields with the location.
// Location fields win when both define the same key.
func (ps *PersonService) Update(id int, person *model.Person, location *model.Location) map[string]any {
	merged := person.Public().Fields()
	for key, value := range location.Fields() {
		merged[key] = value
	}

	ps.server.Logger.Debug().
		Int("person_id", id).
		Int("fields", len(merged)).
		Msg("person updated")

	return merged
}
