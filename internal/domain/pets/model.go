package pets

import "time"

// Pet representa una mascota registrada. El owner queda fijado al crear
// y no es editable por la API.
type Pet struct {
	ID      string
	Name    string
	OwnerID string
	BreedID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner implementa access.Owned.
func (p Pet) Owner() string { return p.OwnerID }
