package dto

import (
	"encoding/json"
	"time"
)

// RegistrarEventoRequest datos de un evento de auditoría.
type RegistrarEventoRequest struct {
	Accion      string          `json:"accion"`
	RecursoTipo string          `json:"recursoTipo"`
	RecursoID   string          `json:"recursoId"`
	Severidad   string          `json:"severidad"`
	Antes       json.RawMessage `json:"antes"`
	Despues     json.RawMessage `json:"despues"`
}

// EventoResponse representación de un evento de auditoría.
type EventoResponse struct {
	ID          string          `json:"id"`
	EmpresaID   string          `json:"empresaId"`
	Accion      string          `json:"accion"`
	RecursoTipo string          `json:"recursoTipo"`
	RecursoID   string          `json:"recursoId,omitempty"`
	Severidad   string          `json:"severidad"`
	ActorID     string          `json:"actorId"`
	ActorNombre string          `json:"actorNombre,omitempty"`
	Antes       json.RawMessage `json:"antes,omitempty"`
	Despues     json.RawMessage `json:"despues,omitempty"`
	IP          string          `json:"ip,omitempty"`
	UserAgent   string          `json:"userAgent,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// EventoListResponse listado paginado de eventos.
type EventoListResponse struct {
	Data []EventoResponse `json:"data"`
	Meta PageMeta         `json:"meta"`
}

// FiltroAuditoriaRequest parámetros de búsqueda del listado y la exportación.
type FiltroAuditoriaRequest struct {
	Accion      string     `query:"accion"`
	RecursoTipo string     `query:"recurso"`
	Severidad   string     `query:"severidad"`
	ActorID     string     `query:"actor"`
	Desde       *time.Time `query:"desde"`
	Hasta       *time.Time `query:"hasta"`
	Texto       string     `query:"q"`
}
