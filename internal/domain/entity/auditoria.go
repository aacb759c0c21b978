package entity

import (
	"encoding/json"
	"time"
)

// Severidades de los eventos de auditoría.
const (
	SeveridadInfo     = "INFO"
	SeveridadWarning  = "WARNING"
	SeveridadError    = "ERROR"
	SeveridadCritical = "CRITICAL"
)

// EventoAuditoria es un registro inmutable: nunca se actualiza después de
// creado. Los eventos CRITICAL quedan exentos de la purga por retención.
type EventoAuditoria struct {
	ID          string
	EmpresaID   string
	Accion      string // "crear", "editar", "eliminar", "login", ...
	RecursoTipo string
	RecursoID   string
	Severidad   string
	ActorID     string
	ActorNombre string
	Antes       json.RawMessage // snapshot previo, campos sensibles redactados
	Despues     json.RawMessage // snapshot posterior, campos sensibles redactados
	IP          string
	UserAgent   string
	ExentoPurga bool // true para CRITICAL
	CreatedAt   time.Time
}

// SeveridadValida informa si la severidad pertenece al catálogo.
func SeveridadValida(s string) bool {
	switch s {
	case SeveridadInfo, SeveridadWarning, SeveridadError, SeveridadCritical:
		return true
	}
	return false
}
