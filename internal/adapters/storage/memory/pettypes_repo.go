package memory

import (
	"context"
	"sort"
	"strings"

	"pet-registry/internal/domain/pettypes"
	"pet-registry/internal/domain/unique"
)

type petTypesRepo struct {
	s *Store
}

func (s *Store) PetTypes() pettypes.Repository {
	return &petTypesRepo{s: s}
}

func (r *petTypesRepo) Create(ctx context.Context, t pettypes.PetType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(t.ID) == "" {
		return pettypes.ErrInvalidInput
	}
	if err := r.s.conflictLocked(unique.KindPetTypes, []unique.Field{
		{Name: "name", Value: t.Name},
	}, t.ID); err != nil {
		return err
	}

	r.s.petTypes[t.ID] = t
	return nil
}

func (r *petTypesRepo) GetByID(ctx context.Context, id string) (pettypes.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.petTypes[id]
	if !ok {
		return pettypes.PetType{}, pettypes.ErrNotFound
	}
	return t, nil
}

func (r *petTypesRepo) List(ctx context.Context) ([]pettypes.PetType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pettypes.PetType, 0, len(r.s.petTypes))
	for _, t := range r.s.petTypes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *petTypesRepo) Update(ctx context.Context, t pettypes.PetType) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.petTypes[t.ID]; !ok {
		return pettypes.ErrNotFound
	}
	if err := r.s.conflictLocked(unique.KindPetTypes, []unique.Field{
		{Name: "name", Value: t.Name},
	}, t.ID); err != nil {
		return err
	}

	r.s.petTypes[t.ID] = t
	return nil
}

func (r *petTypesRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.petTypes[id]; !ok {
		return pettypes.ErrNotFound
	}
	delete(r.s.petTypes, id)

	// Cascada: breeds del type, y pets de esas breeds
	for breedID, b := range r.s.breeds {
		if b.PetTypeID != id {
			continue
		}
		delete(r.s.breeds, breedID)
		for petID, p := range r.s.pets {
			if p.BreedID == breedID {
				delete(r.s.pets, petID)
			}
		}
	}
	return nil
}
