package pettypes

import "context"

type Repository interface {
	Create(ctx context.Context, t PetType) error
	GetByID(ctx context.Context, id string) (PetType, error)
	List(ctx context.Context) ([]PetType, error)
	Update(ctx context.Context, t PetType) error

	// Delete borra el type y, en cascada, sus breeds y los pets de esas breeds.
	Delete(ctx context.Context, id string) error
}
