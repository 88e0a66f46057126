package access

import "errors"

var ErrForbidden = errors.New("forbidden")

// Subject es el requester autenticado, ya resuelto desde los claims.
type Subject struct {
	UserID     string
	Privileged bool
}

// Owned lo implementan los registros que tienen dueño directo.
// Los recursos que no lo implementan (pet types, breeds) solo son
// accesibles a nivel de objeto por identidades privilegiadas.
type Owned interface {
	Owner() string
}

// Authorize decide allow/deny para retrieve/update/destroy de un registro.
// List y create no pasan por aquí.
func Authorize(sub Subject, record any) error {
	if sub.Privileged {
		return nil
	}
	if o, ok := record.(Owned); ok && o.Owner() != "" && o.Owner() == sub.UserID {
		return nil
	}
	return ErrForbidden
}
