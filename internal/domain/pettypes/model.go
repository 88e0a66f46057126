package pettypes

import "time"

// PetType representa una especie registrada (perro, gato, etc).
// No implementa access.Owned: a nivel de objeto solo lo tocan
// identidades privilegiadas.
type PetType struct {
	ID          string
	Name        string
	LimbsNumber int

	CreatedAt time.Time
	UpdatedAt time.Time
}
