package memory

import (
	"context"
	"sort"
	"strings"

	"pet-registry/internal/domain/unique"
	"pet-registry/internal/domain/users"
)

type usersRepo struct {
	s *Store
}

// Users devuelve la vista users.Repository del store.
func (s *Store) Users() users.Repository {
	return &usersRepo{s: s}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if strings.TrimSpace(u.ID) == "" {
		return users.ErrInvalidInput
	}
	if err := r.s.conflictLocked(unique.KindUsers, []unique.Field{
		{Name: "username", Value: u.Username},
		{Name: "email", Value: u.Email},
	}, u.ID); err != nil {
		return err
	}

	r.s.users[u.ID] = u
	return nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return users.User{}, users.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return users.User{}, users.ErrNotFound
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]users.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, u)
	}

	// Orden estable por created_at asc (consistencia en dev)
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *usersRepo) Update(ctx context.Context, u users.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return users.ErrNotFound
	}
	if err := r.s.conflictLocked(unique.KindUsers, []unique.Field{
		{Name: "username", Value: u.Username},
		{Name: "email", Value: u.Email},
	}, u.ID); err != nil {
		return err
	}

	r.s.users[u.ID] = u
	return nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return users.ErrNotFound
	}
	delete(r.s.users, id)

	// Cascada: pets del owner
	for petID, p := range r.s.pets {
		if p.OwnerID == id {
			delete(r.s.pets, petID)
		}
	}
	return nil
}
