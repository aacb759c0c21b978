package dto

import "time"

// CreateRolRequest datos para crear un rol de empresa.
// Horario en formato "HH:MM"; vigencia en fechas absolutas.
type CreateRolRequest struct {
	Nombre        string     `json:"nombre"`
	Descripcion   string     `json:"descripcion"`
	HorarioInicio *string    `json:"horarioInicio"`
	HorarioFin    *string    `json:"horarioFin"`
	FechaInicio   *time.Time `json:"fechaInicio"`
	FechaFin      *time.Time `json:"fechaFin"`
}

// UpdateRolRequest campos actualizables; solo se revalida lo que cambia.
type UpdateRolRequest struct {
	Nombre        *string    `json:"nombre"`
	Descripcion   *string    `json:"descripcion"`
	HorarioInicio *string    `json:"horarioInicio"`
	HorarioFin    *string    `json:"horarioFin"`
	FechaInicio   *time.Time `json:"fechaInicio"`
	FechaFin      *time.Time `json:"fechaFin"`
	Estado        *string    `json:"estado"`
}

// RolResponse representación de un rol.
// AdvertenciaHorario se llena cuando el horario supera las 8 horas: se acepta
// pero se marca como no conforme.
type RolResponse struct {
	ID                 string     `json:"id"`
	EmpresaID          string     `json:"empresaId,omitempty"`
	Nombre             string     `json:"nombre"`
	Descripcion        string     `json:"descripcion"`
	EsSistema          bool       `json:"esSistema"`
	HorarioInicio      *string    `json:"horarioInicio,omitempty"`
	HorarioFin         *string    `json:"horarioFin,omitempty"`
	FechaInicio        *time.Time `json:"fechaInicio,omitempty"`
	FechaFin           *time.Time `json:"fechaFin,omitempty"`
	Estado             string     `json:"estado"`
	AdvertenciaHorario string     `json:"advertenciaHorario,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// RolListResponse listado paginado de roles.
type RolListResponse struct {
	Data []RolResponse `json:"data"`
	Meta PageMeta      `json:"meta"`
}

// AsignarPermisoRequest asigna un permiso del catálogo a un rol.
type AsignarPermisoRequest struct {
	PermisoID string `json:"permisoId"`
}

// PermisoResponse entrada del catálogo o snapshot asignado a un rol.
type PermisoResponse struct {
	ID          string `json:"id"`
	Recurso     string `json:"recurso"`
	Accion      string `json:"accion"`
	Descripcion string `json:"descripcion,omitempty"`
}

// PermisoDirectoRequest otorga un permiso del catálogo directamente a un
// usuario, sin pasar por un rol.
type PermisoDirectoRequest struct {
	Recurso string `json:"recurso"`
	Accion  string `json:"accion"`
}

// PermisoDirectoResponse representación de un permiso directo otorgado.
type PermisoDirectoResponse struct {
	ID        string    `json:"id"`
	UsuarioID string    `json:"usuarioId"`
	Recurso   string    `json:"recurso"`
	Accion    string    `json:"accion"`
	CreatedAt time.Time `json:"createdAt"`
}

// AsignarRolRequest asigna un rol a un usuario.
type AsignarRolRequest struct {
	UsuarioID   string     `json:"usuarioId"`
	FechaInicio *time.Time `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin"`
}

// AsignacionResponse representación de una asignación usuario-rol.
type AsignacionResponse struct {
	ID          string     `json:"id"`
	UsuarioID   string     `json:"usuarioId"`
	RolID       string     `json:"rolId"`
	EmpresaID   string     `json:"empresaId"`
	FechaInicio time.Time  `json:"fechaInicio"`
	FechaFin    *time.Time `json:"fechaFin,omitempty"`
	Activa      bool       `json:"activa"`
}
