package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-registry/internal/domain/breeds"
	"pet-registry/internal/domain/pets"
	"pet-registry/internal/domain/pettypes"
	"pet-registry/internal/domain/unique"
	"pet-registry/internal/domain/users"
)

func seedGraph(t *testing.T, s *Store) (owner users.User, petType pettypes.PetType, breed breeds.Breed, pet pets.Pet) {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	owner = users.User{ID: "u1", Username: "ana", Email: "ana@example.com", Role: "user", CreatedAt: now, UpdatedAt: now}
	if err := s.Users().Create(ctx, owner); err != nil {
		t.Fatalf("create user: %v", err)
	}

	petType = pettypes.PetType{ID: "t1", Name: "Dog", LimbsNumber: 4, CreatedAt: now, UpdatedAt: now}
	if err := s.PetTypes().Create(ctx, petType); err != nil {
		t.Fatalf("create pet type: %v", err)
	}

	breed = breeds.Breed{ID: "b1", Name: "Labrador", Color: "gold", PetTypeID: "t1", CreatedAt: now, UpdatedAt: now}
	if err := s.Breeds().Create(ctx, breed); err != nil {
		t.Fatalf("create breed: %v", err)
	}

	pet = pets.Pet{ID: "p1", Name: "Rex", OwnerID: "u1", BreedID: "b1", CreatedAt: now, UpdatedAt: now}
	if err := s.Pets().Create(ctx, pet); err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return
}

func TestDeletePetType_CascadesToBreedsAndPets(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()

	if err := s.PetTypes().Delete(ctx, "t1"); err != nil {
		t.Fatalf("delete pet type: %v", err)
	}

	if _, err := s.Breeds().GetByID(ctx, "b1"); !errors.Is(err, breeds.ErrNotFound) {
		t.Fatalf("expected breed gone, got %v", err)
	}
	if _, err := s.Pets().GetByID(ctx, "p1"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pet gone, got %v", err)
	}
}

func TestDeleteBreed_CascadesToPets(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()

	if err := s.Breeds().Delete(ctx, "b1"); err != nil {
		t.Fatalf("delete breed: %v", err)
	}

	if _, err := s.Pets().GetByID(ctx, "p1"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pet gone, got %v", err)
	}
	// El type sigue existiendo
	if _, err := s.PetTypes().GetByID(ctx, "t1"); err != nil {
		t.Fatalf("expected pet type intact, got %v", err)
	}
}

func TestDeleteUser_CascadesToOwnedPets(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()

	if err := s.Users().Delete(ctx, "u1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, err := s.Pets().GetByID(ctx, "p1"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pet gone, got %v", err)
	}
	if _, err := s.Breeds().GetByID(ctx, "b1"); err != nil {
		t.Fatalf("expected breed intact, got %v", err)
	}
}

func TestCreate_EnforcesUniquenessUnderLock(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()
	now := time.Now()

	err := s.Users().Create(ctx, users.User{
		ID: "u2", Username: "ana", Email: "other@example.com", Role: "user", CreatedAt: now, UpdatedAt: now,
	})
	var conflict *unique.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}

	err = s.PetTypes().Create(ctx, pettypes.PetType{ID: "t2", Name: "Dog", CreatedAt: now, UpdatedAt: now})
	if !errors.As(err, &conflict) || conflict.Field != "name" {
		t.Fatalf("expected name conflict, got %v", err)
	}
}

func TestCreate_RejectsMissingReferences(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()
	now := time.Now()

	err := s.Breeds().Create(ctx, breeds.Breed{ID: "b2", Name: "Siamese", Color: "cream", PetTypeID: "nope", CreatedAt: now, UpdatedAt: now})
	if !errors.Is(err, breeds.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for breed, got %v", err)
	}

	err = s.Pets().Create(ctx, pets.Pet{ID: "p2", Name: "Milo", OwnerID: "u1", BreedID: "nope", CreatedAt: now, UpdatedAt: now})
	if !errors.Is(err, pets.ErrInvalidReference) {
		t.Fatalf("expected invalid reference for pet, got %v", err)
	}
}

func TestExists_ExcludesOwnID(t *testing.T) {
	s := NewStore()
	seedGraph(t, s)
	ctx := context.Background()

	exists, err := s.Exists(ctx, unique.KindUsers, "email", "ana@example.com", "u1")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists {
		t.Fatal("expected own record excluded")
	}

	exists, err = s.Exists(ctx, unique.KindUsers, "email", "ana@example.com", "")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatal("expected match without exclusion")
	}
}
