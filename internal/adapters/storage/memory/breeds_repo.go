package memory

import (
	"context"
	"sort"
	"strings"

	"pet-registry/internal/domain/breeds"
	"pet-registry/internal/domain/unique"
)

type breedsRepo struct {
	s *Store
}

func (s *Store) Breeds() breeds.Repository {
	return &breedsRepo{s: s}
}

func (r *breedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(b.ID) == "" {
		return breeds.ErrInvalidInput
	}
	if _, ok := r.s.petTypes[b.PetTypeID]; !ok {
		return breeds.ErrInvalidReference
	}
	if err := r.s.conflictLocked(unique.KindBreeds, []unique.Field{
		{Name: "name", Value: b.Name},
	}, b.ID); err != nil {
		return err
	}

	r.s.breeds[b.ID] = b
	return nil
}

func (r *breedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.breeds[id]
	if !ok {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	return b, nil
}

func (r *breedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]breeds.Breed, 0, len(r.s.breeds))
	for _, b := range r.s.breeds {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *breedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeds[b.ID]; !ok {
		return breeds.ErrNotFound
	}
	if _, ok := r.s.petTypes[b.PetTypeID]; !ok {
		return breeds.ErrInvalidReference
	}
	if err := r.s.conflictLocked(unique.KindBreeds, []unique.Field{
		{Name: "name", Value: b.Name},
	}, b.ID); err != nil {
		return err
	}

	r.s.breeds[b.ID] = b
	return nil
}

func (r *breedsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.breeds[id]; !ok {
		return breeds.ErrNotFound
	}
	delete(r.s.breeds, id)

	// Cascada: pets de la breed
	for petID, p := range r.s.pets {
		if p.BreedID == id {
			delete(r.s.pets, petID)
		}
	}
	return nil
}
