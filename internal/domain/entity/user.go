package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema: administrador o vendedor.
type User struct {
	ID           string
	Username     string
	Name         string
	PasswordHash string // bcrypt hash
	Role         string // admin, vendedor
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
