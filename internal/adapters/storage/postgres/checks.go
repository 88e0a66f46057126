package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pet-registry/internal/domain/unique"
)

// Checks implementa unique.Checker contra Postgres.
type Checks struct {
	db *sql.DB
}

func NewChecks(db *sql.DB) *Checks {
	return &Checks{db: db}
}

// Whitelist de tabla/campo: los identificadores van interpolados en el SQL,
// así que solo aceptamos combinaciones conocidas.
var checkableFields = map[string]map[string]bool{
	unique.KindUsers:    {"username": true, "email": true},
	unique.KindPetTypes: {"name": true},
	unique.KindBreeds:   {"name": true},
}

func (c *Checks) Exists(ctx context.Context, kind, field, value, excludeID string) (bool, error) {
	fields, ok := checkableFields[kind]
	if !ok {
		return false, errors.New("unknown kind: " + kind)
	}
	if !fields[field] {
		return false, errors.New("unknown field: " + field)
	}

	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE %s = $1 AND ($2 = '' OR id::text <> $2)
		)
	`, kind, field)

	var exists bool
	if err := c.db.QueryRowContext(ctx, query, value, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
