package entity

import "time"

// Usuario representa un usuario del sistema (pertenece a una Empresa).
type Usuario struct {
	ID           string
	EmpresaID    string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Estado       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
