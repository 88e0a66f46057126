package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-registry/internal/domain/users"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, username, email, password_hash,
			phone_number, address, role,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.PhoneNumber,
		u.Address,
		u.Role,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	return err
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash,
			phone_number, address, role,
			created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UsersRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return users.User{}, users.ErrNotFound
	}
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash,
			phone_number, address, role,
			created_at, updated_at
		FROM users
		WHERE username = $1
	`, username))
}

func (r *UsersRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, username, email, password_hash,
			phone_number, address, role,
			created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.PasswordHash,
			&u.PhoneNumber,
			&u.Address,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET
			username = $2,
			email = $3,
			password_hash = $4,
			phone_number = $5,
			address = $6,
			role = $7,
			updated_at = $8
		WHERE id = $1
	`,
		u.ID,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.PhoneNumber,
		u.Address,
		u.Role,
		u.UpdatedAt,
	)
	if c, ok := conflictFrom(err); ok {
		return c
	}
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

// Delete borra el user; los pets del owner caen por ON DELETE CASCADE.
func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) scanOne(row *sql.Row) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.PhoneNumber,
		&u.Address,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	return u, nil
}
