package dto

import "time"

// CreateClienteRequest datos para registrar un cliente.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre"`
	Documento string `json:"documento"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
}

// ClienteResponse representación de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	EmpresaID string    `json:"empresaId"`
	Nombre    string    `json:"nombre"`
	Documento string    `json:"documento"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Direccion string    `json:"direccion"`
	CreatedAt time.Time `json:"createdAt"`
}

// ClienteListResponse listado paginado de clientes.
type ClienteListResponse struct {
	Data []ClienteResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}
