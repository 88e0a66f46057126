package memory

import (
	"context"
	"sort"
	"strings"

	"pet-registry/internal/domain/pets"
)

type petsRepo struct {
	s *Store
}

func (s *Store) Pets() pets.Repository {
	return &petsRepo{s: s}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return pets.ErrInvalidInput
	}
	if _, ok := r.s.users[p.OwnerID]; !ok {
		return pets.ErrInvalidReference
	}
	if _, ok := r.s.breeds[p.BreedID]; !ok {
		return pets.ErrInvalidReference
	}

	r.s.pets[p.ID] = p
	return nil
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.s.pets))
	for _, p := range r.s.pets {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *petsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	if _, ok := r.s.breeds[p.BreedID]; !ok {
		return pets.ErrInvalidReference
	}

	r.s.pets[p.ID] = p
	return nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)
	return nil
}
