package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-registry/internal/domain/breeds"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/pettypes"
	"pet-registry/internal/domain/unique"
	"pet-registry/internal/domain/users"
)

// Store es el storage in-memory completo (dev y tests).
// Un solo mutex para las cuatro entidades: así el check de unicidad y el
// write son atómicos, y los deletes en cascada no ven estado intermedio.
type Store struct {
	mu sync.RWMutex

	users    map[string]users.User
	petTypes map[string]pettypes.PetType
	breeds   map[string]breeds.Breed
	pets     map[string]pets.Pet
}

func NewStore() *Store {
	return &Store{
		users:    make(map[string]users.User),
		petTypes: make(map[string]pettypes.PetType),
		breeds:   make(map[string]breeds.Breed),
		pets:     make(map[string]pets.Pet),
	}
}

// Exists implementa unique.Checker.
func (s *Store) Exists(ctx context.Context, kind, field, value, excludeID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.existsLocked(kind, field, value, excludeID)
}

func (s *Store) existsLocked(kind, field, value, excludeID string) (bool, error) {
	switch kind {
	case unique.KindUsers:
		for _, u := range s.users {
			if u.ID == excludeID {
				continue
			}
			switch field {
			case "username":
				if u.Username == value {
					return true, nil
				}
			case "email":
				if u.Email == value {
					return true, nil
				}
			default:
				return false, errors.New("unknown field: " + field)
			}
		}
		return false, nil

	case unique.KindPetTypes:
		if field != "name" {
			return false, errors.New("unknown field: " + field)
		}
		for _, t := range s.petTypes {
			if t.ID != excludeID && t.Name == value {
				return true, nil
			}
		}
		return false, nil

	case unique.KindBreeds:
		if field != "name" {
			return false, errors.New("unknown field: " + field)
		}
		for _, b := range s.breeds {
			if b.ID != excludeID && b.Name == value {
				return true, nil
			}
		}
		return false, nil
	}

	return false, errors.New("unknown kind: " + kind)
}

// conflictLocked re-chequea unicidad bajo el lock de escritura, imitando
// la constraint UNIQUE de Postgres (el validator corre fuera del lock).
func (s *Store) conflictLocked(kind string, fields []unique.Field, excludeID string) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			continue
		}
		exists, err := s.existsLocked(kind, f.Name, f.Value, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return &unique.ConflictError{Kind: kind, Field: f.Name}
		}
	}
	return nil
}
