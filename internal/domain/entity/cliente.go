package entity

import "time"

// Cliente representa un cliente de la empresa (documentos de venta).
type Cliente struct {
	ID        string
	EmpresaID string
	Nombre    string
	Documento string // RUC o DNI
	Email     string
	Telefono  string
	Direccion string
	CreatedAt time.Time
	UpdatedAt time.Time
}
