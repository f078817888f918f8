package entity

// Actor identidad ya autenticada que ejecuta una operación (resuelta por el control de acceso).
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor tiene rol administrador.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }
