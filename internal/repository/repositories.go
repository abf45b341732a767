// Package repository holds the lookups the service layer reads from.
//
// There is no database: the only repository is a read-only, in-memory set
// of known person ids, built once at startup and injected into services.
package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Person PersonRepository
}

// NewRepositories builds the repositories over DefaultPersonIDs.
func NewRepositories() *Repositories {
	return &Repositories{
		Person: NewStaticPersonRepository(DefaultPersonIDs...),
	}
}
