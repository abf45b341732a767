package repository

import "context"

// DefaultPersonIDs are the ids GET /person/detail/{id} reports as existing.
var DefaultPersonIDs = []int{1, 2, 3, 4, 5}

// PersonRepository answers whether a person exists.
type PersonRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// StaticPersonRepository is a PersonRepository over a fixed id set.
// It is never written after construction, so it is safe for concurrent use.
type StaticPersonRepository struct {
	ids map[int]struct{}
}

// NewStaticPersonRepository returns a repository knowing exactly ids.
func NewStaticPersonRepository(ids ...int) *StaticPersonRepository {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &StaticPersonRepository{ids: set}
}

func (r *StaticPersonRepository) Exists(ctx context.Context, id int) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := r.ids[id]
	return ok, nil
}
