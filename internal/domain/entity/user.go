package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "GERENTE"
	RoleSeller  = "VENDEDOR"
)

// User usuario operador del sistema.
type User struct {
	ID        int64
	Name      string
	Email     string
	Role      string
	BranchID  *int64
	CreatedAt time.Time
}
