package auth

// Roles soportados por el sistema.
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleUser      = "user"
)

// Claims representa la identidad extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// IsPrivileged indica si la identidad puede saltarse el chequeo de ownership.
// Solo admin: moderator no tiene bypass (equivale al is_superuser original).
func (c Claims) IsPrivileged() bool {
	return c.Role == RoleAdmin
}

// ValidRole reporta si el rol es uno de los soportados.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}
