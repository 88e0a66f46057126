package postgres

import (
	"errors"

	"pet-registry/internal/domain/unique"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos de error de Postgres que nos interesan.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Las constraints UNIQUE de las migraciones, con el campo que nombran.
// La constraint es el guard autoritativo contra el race validate-then-write;
// aquí solo la traducimos de vuelta a un conflicto con nombre de campo.
var uniqueConstraints = map[string]*unique.ConflictError{
	"users_username_key": {Kind: unique.KindUsers, Field: "username"},
	"users_email_key":    {Kind: unique.KindUsers, Field: "email"},
	"pet_types_name_key": {Kind: unique.KindPetTypes, Field: "name"},
	"breeds_name_key":    {Kind: unique.KindBreeds, Field: "name"},
}

// conflictFrom devuelve el ConflictError correspondiente si err es una
// violación de constraint UNIQUE conocida.
func conflictFrom(err error) (*unique.ConflictError, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != codeUniqueViolation {
		return nil, false
	}
	c, ok := uniqueConstraints[pgErr.ConstraintName]
	return c, ok
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeForeignKeyViolation
}
