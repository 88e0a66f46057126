package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-registry/internal/domain/breeds"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (id, name, color, pet_type_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		b.ID,
		b.Name,
		b.Color,
		b.PetTypeID,
		b.CreatedAt,
		b.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	if isForeignKeyViolation(err) {
		return breeds.ErrInvalidReference
	}
	return err
}

func (r *BreedsRepo) GetByID(ctx context.Context, id string) (breeds.Breed, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return breeds.Breed{}, breeds.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, color, pet_type_id, created_at, updated_at
		FROM breeds
		WHERE id = $1
	`, id)

	var b breeds.Breed
	if err := row.Scan(&b.ID, &b.Name, &b.Color, &b.PetTypeID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return breeds.Breed{}, breeds.ErrNotFound
		}
		return breeds.Breed{}, err
	}
	return b, nil
}

func (r *BreedsRepo) List(ctx context.Context) ([]breeds.Breed, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, color, pet_type_id, created_at, updated_at
		FROM breeds
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.ID, &b.Name, &b.Color, &b.PetTypeID, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeds
		SET name = $2, color = $3, pet_type_id = $4, updated_at = $5
		WHERE id = $1
	`,
		b.ID,
		b.Name,
		b.Color,
		b.PetTypeID,
		b.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	if isForeignKeyViolation(err) {
		return breeds.ErrInvalidReference
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeds.ErrNotFound
	}
	return nil
}

// Delete borra la breed; sus pets caen por ON DELETE CASCADE.
func (r *BreedsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM breeds WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeds.ErrNotFound
	}
	return nil
}
