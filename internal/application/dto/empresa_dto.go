package dto

import "time"

// CreateEmpresaRequest datos para registrar una empresa.
type CreateEmpresaRequest struct {
	RazonSocial string `json:"razonSocial"`
	RUC         string `json:"ruc"`
	Tipo        string `json:"tipo"`
	Direccion   string `json:"direccion"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email"`
}

// UpdateEmpresaRequest campos actualizables; los punteros nil no se tocan.
type UpdateEmpresaRequest struct {
	RazonSocial *string `json:"razonSocial"`
	Direccion   *string `json:"direccion"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Estado      *string `json:"estado"`
}

// EmpresaResponse representación de una empresa en respuestas.
type EmpresaResponse struct {
	ID          string    `json:"id"`
	RazonSocial string    `json:"razonSocial"`
	RUC         string    `json:"ruc"`
	Tipo        string    `json:"tipo"`
	Direccion   string    `json:"direccion"`
	Telefono    string    `json:"telefono"`
	Email       string    `json:"email"`
	Estado      string    `json:"estado"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EmpresaListResponse listado paginado de empresas.
type EmpresaListResponse struct {
	Data []EmpresaResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// EmpresaConfigResponse configuración regional/tributaria.
type EmpresaConfigResponse struct {
	EmpresaID    string `json:"empresaId"`
	Moneda       string `json:"moneda"`
	TasaIGV      string `json:"tasaIgv"`
	ZonaHoraria  string `json:"zonaHoraria"`
	FormatoFecha string `json:"formatoFecha"`
}

// UpdateEmpresaConfigRequest campos de configuración actualizables.
type UpdateEmpresaConfigRequest struct {
	Moneda       *string `json:"moneda"`
	TasaIGV      *string `json:"tasaIgv"`
	ZonaHoraria  *string `json:"zonaHoraria"`
	FormatoFecha *string `json:"formatoFecha"`
}
