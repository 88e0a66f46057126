package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-registry/internal/domain/pettypes"
)

type PetTypesRepo struct {
	db *sql.DB
}

func NewPetTypesRepo(db *sql.DB) *PetTypesRepo {
	return &PetTypesRepo{db: db}
}

func (r *PetTypesRepo) Create(ctx context.Context, t pettypes.PetType) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_types (id, name, limbs_number, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5)
	`,
		t.ID,
		t.Name,
		t.LimbsNumber,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	return err
}

func (r *PetTypesRepo) GetByID(ctx context.Context, id string) (pettypes.PetType, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pettypes.PetType{}, pettypes.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, limbs_number, created_at, updated_at
		FROM pet_types
		WHERE id = $1
	`, id)

	var t pettypes.PetType
	if err := row.Scan(&t.ID, &t.Name, &t.LimbsNumber, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return pettypes.PetType{}, pettypes.ErrNotFound
		}
		return pettypes.PetType{}, err
	}
	return t, nil
}

func (r *PetTypesRepo) List(ctx context.Context) ([]pettypes.PetType, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, limbs_number, created_at, updated_at
		FROM pet_types
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pettypes.PetType, 0)
	for rows.Next() {
		var t pettypes.PetType
		if err := rows.Scan(&t.ID, &t.Name, &t.LimbsNumber, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PetTypesRepo) Update(ctx context.Context, t pettypes.PetType) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_types
		SET name = $2, limbs_number = $3, updated_at = $4
		WHERE id = $1
	`,
		t.ID,
		t.Name,
		t.LimbsNumber,
		t.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pettypes.ErrNotFound
	}
	return nil
}

// Delete borra el type; breeds y pets dependientes caen por ON DELETE CASCADE.
func (r *PetTypesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pet_types WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pettypes.ErrNotFound
	}
	return nil
}
