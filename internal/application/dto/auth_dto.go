package dto

import "time"

// RegisterRequest datos de registro de usuario.
type RegisterRequest struct {
	EmpresaID string `json:"empresaId"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Nombre    string `json:"nombre"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UsuarioResponse representación de un usuario (sin hash).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	EmpresaID string    `json:"empresaId"`
	Email     string    `json:"email"`
	Nombre    string    `json:"nombre"`
	Estado    string    `json:"estado"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LoginResponse token + usuario autenticado.
type LoginResponse struct {
	Token string          `json:"token"`
	User  UsuarioResponse `json:"user"`
}
