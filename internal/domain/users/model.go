package users

import "time"

// User representa una cuenta del sistema.
// PasswordHash guarda bcrypt, nunca el password en claro.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	Address      string
	Role         string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Owner implementa access.Owned: un user es dueño de su propio registro.
func (u User) Owner() string { return u.ID }
