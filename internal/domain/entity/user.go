package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleVentas  = "ventas"
	RoleCompras = "compras"
)

// User representa un usuario del sistema (pertenece a una Company).
type User struct {
	ID           string
	Company      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, ventas, compras
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
