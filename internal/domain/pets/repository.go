package pets

import "context"

type Repository interface {
	// Create devuelve ErrInvalidReference si owner_id o breed_id no existen.
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
}
