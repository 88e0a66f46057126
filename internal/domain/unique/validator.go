package unique

import (
	"context"
	"fmt"
	"strings"
)

// Kinds de entidades con campos únicos.
const (
	KindUsers    = "users"
	KindPetTypes = "pet_types"
	KindBreeds   = "breeds"
)

// ConflictError nombra el campo que ya existe.
type ConflictError struct {
	Kind  string
	Field string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s already exists", e.Kind, e.Field)
}

// Checker lo implementa cada adaptador de storage.
// excludeID permite omitir el propio registro en updates.
type Checker interface {
	Exists(ctx context.Context, kind, field, value, excludeID string) (bool, error)
}

// Field es un par campo/valor candidato a escribirse.
type Field struct {
	Name  string
	Value string
}

// Validator es la precondición de unicidad compartida por todos los
// controllers. El storage sigue siendo el guard autoritativo (constraints
// UNIQUE en Postgres, mutex único en memoria); esto solo produce el error
// con nombre de campo antes de intentar el write.
type Validator struct {
	checker Checker
}

func NewValidator(c Checker) *Validator {
	return &Validator{checker: c}
}

// Validate devuelve *ConflictError con el primer campo duplicado, o nil.
func (v *Validator) Validate(ctx context.Context, kind string, fields []Field, excludeID string) error {
	for _, f := range fields {
		value := strings.TrimSpace(f.Value)
		if value == "" {
			continue
		}
		exists, err := v.checker.Exists(ctx, kind, f.Name, value, excludeID)
		if err != nil {
			return err
		}
		if exists {
			return &ConflictError{Kind: kind, Field: f.Name}
		}
	}
	return nil
}
