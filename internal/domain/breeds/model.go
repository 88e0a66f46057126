package breeds

import "time"

// Breed representa una raza, siempre asociada a un pet type.
// Como PetType, no implementa access.Owned.
type Breed struct {
	ID        string
	Name      string
	Color     string
	PetTypeID string

	CreatedAt time.Time
	UpdatedAt time.Time
}
