package unique

import (
	"context"
	"errors"
	"testing"
)

// fakeChecker simula el storage: taken mapea kind/field/value ocupados.
type fakeChecker struct {
	taken map[string]string // "kind/field/value" -> id del registro existente
	err   error
}

func (f *fakeChecker) Exists(ctx context.Context, kind, field, value, excludeID string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	id, ok := f.taken[kind+"/"+field+"/"+value]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func TestValidate_OkWhenFree(t *testing.T) {
	v := NewValidator(&fakeChecker{taken: map[string]string{}})

	err := v.Validate(context.Background(), KindUsers, []Field{
		{Name: "username", Value: "ana"},
		{Name: "email", Value: "ana@example.com"},
	}, "")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
}

func TestValidate_ConflictNamesField(t *testing.T) {
	v := NewValidator(&fakeChecker{taken: map[string]string{
		"users/email/ana@example.com": "other-id",
	}})

	err := v.Validate(context.Background(), KindUsers, []Field{
		{Name: "username", Value: "ana"},
		{Name: "email", Value: "ana@example.com"},
	}, "")

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Field != "email" {
		t.Fatalf("expected conflict on email, got %q", conflict.Field)
	}
}

func TestValidate_ExcludesOwnRecordOnUpdate(t *testing.T) {
	v := NewValidator(&fakeChecker{taken: map[string]string{
		"users/username/ana": "my-id",
	}})

	// El match es el propio registro: no es conflicto.
	if err := v.Validate(context.Background(), KindUsers, []Field{
		{Name: "username", Value: "ana"},
	}, "my-id"); err != nil {
		t.Fatalf("expected ok excluding own id, got %v", err)
	}

	// Mismo valor pero de otro registro: conflicto.
	err := v.Validate(context.Background(), KindUsers, []Field{
		{Name: "username", Value: "ana"},
	}, "other-id")
	var conflict *ConflictError
	if !errors.As(err, &conflict) || conflict.Field != "username" {
		t.Fatalf("expected conflict on username, got %v", err)
	}
}

func TestValidate_SkipsEmptyValues(t *testing.T) {
	v := NewValidator(&fakeChecker{err: errors.New("should not be called")})

	if err := v.Validate(context.Background(), KindBreeds, []Field{
		{Name: "name", Value: "   "},
	}, ""); err != nil {
		t.Fatalf("expected empty value skipped, got %v", err)
	}
}

func TestValidate_PropagatesCheckerError(t *testing.T) {
	boom := errors.New("storage down")
	v := NewValidator(&fakeChecker{err: boom})

	err := v.Validate(context.Background(), KindPetTypes, []Field{
		{Name: "name", Value: "dog"},
	}, "")
	if !errors.Is(err, boom) {
		t.Fatalf("expected checker error, got %v", err)
	}
}
