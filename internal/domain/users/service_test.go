package users_test

import (
	"context"
	"errors"
	"testing"

	"pet-registry/internal/adapters/storage/memory"
	"pet-registry/internal/domain/unique"
	"pet-registry/internal/domain/users"
	"pet-registry/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

func newService() *users.Service {
	store := memory.NewStore()
	return users.NewService(store.Users(), unique.NewValidator(store))
}

func TestCreate_HashesPasswordAndDefaultsRole(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, users.CreateInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "s3cret",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if u.ID == "" {
		t.Fatal("expected generated id")
	}
	if u.Role != auth.RoleUser {
		t.Fatalf("expected default role user, got %q", u.Role)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatal("expected password stored as hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not match password: %v", err)
	}
}

func TestCreate_RejectsDuplicateUsernameAndEmail(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateInput{Username: "ana", Email: "ana@example.com", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err := svc.Create(ctx, users.CreateInput{Username: "ana", Email: "other@example.com", Password: "x"})
	var conflict *unique.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}

	_, err = svc.Create(ctx, users.CreateInput{Username: "other", Email: "ana@example.com", Password: "x"})
	if !errors.As(err, &conflict) || conflict.Field != "email" {
		t.Fatalf("expected email conflict, got %v", err)
	}

	// Nada nuevo quedó persistido
	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 user persisted, got %d", len(all))
	}
}

func TestUpdate_ExcludesOwnRecordFromUniqueness(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, users.CreateInput{Username: "ana", Email: "ana@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Re-escribir los mismos username/email no es conflicto
	updated, err := svc.Update(ctx, u.ID, users.UpdateInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "new-pass",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Username != "ana" {
		t.Fatalf("unexpected username %q", updated.Username)
	}
}

func TestUpdate_ConflictsWithOtherRecord(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, users.CreateInput{Username: "ana", Email: "ana@example.com", Password: "x"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	u2, err := svc.Create(ctx, users.CreateInput{Username: "leo", Email: "leo@example.com", Password: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = svc.Update(ctx, u2.ID, users.UpdateInput{Username: "ana", Email: "leo@example.com", Password: "x"})
	var conflict *unique.ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "username" {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestPatch_TouchesOnlyProvidedFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	u, err := svc.Create(ctx, users.CreateInput{
		Username:    "ana",
		Email:       "ana@example.com",
		Password:    "x",
		PhoneNumber: "555-1234",
		Address:     "Av. Siempre Viva 742",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "555-9999"
	patched, err := svc.Patch(ctx, u.ID, users.PatchInput{PhoneNumber: &phone})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	if patched.PhoneNumber != "555-9999" {
		t.Fatalf("expected phone updated, got %q", patched.PhoneNumber)
	}
	if patched.Username != "ana" || patched.Email != "ana@example.com" || patched.Address != "Av. Siempre Viva 742" {
		t.Fatalf("expected other fields untouched, got %+v", patched)
	}
	if patched.PasswordHash != u.PasswordHash {
		t.Fatal("expected password hash untouched")
	}
}

func TestCreate_RejectsUnknownRole(t *testing.T) {
	svc := newService()

	_, err := svc.Create(context.Background(), users.CreateInput{
		Username: "ana",
		Email:    "ana@example.com",
		Password: "x",
		Role:     "superhero",
	})
	if !errors.Is(err, users.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, users.CreateInput{Username: "ana", Email: "ana@example.com", Password: "s3cret"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := svc.Authenticate(ctx, "ana", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.ID != created.ID {
		t.Fatalf("unexpected user %q", u.ID)
	}

	if _, err := svc.Authenticate(ctx, "ana", "wrong"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for bad password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost", "s3cret"); !errors.Is(err, users.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown user, got %v", err)
	}
}
