package breeds

import "context"

type Repository interface {
	// Create devuelve ErrInvalidReference si pet_type_id no existe.
	Create(ctx context.Context, b Breed) error
	GetByID(ctx context.Context, id string) (Breed, error)
	List(ctx context.Context) ([]Breed, error)
	Update(ctx context.Context, b Breed) error

	// Delete borra la breed y, en cascada, sus pets.
	Delete(ctx context.Context, id string) error
}
