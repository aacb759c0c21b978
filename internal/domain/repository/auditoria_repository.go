package repository

import (
	"time"

	"github.com/gestium/gestium-api/internal/domain/entity"
)

// FiltroAuditoria agrupa los criterios de búsqueda de eventos. Los campos
// vacíos no filtran.
type FiltroAuditoria struct {
	EmpresaID   string
	Accion      string
	RecursoTipo string
	Severidad   string
	ActorID     string
	Desde       *time.Time
	Hasta       *time.Time
	Texto       string // búsqueda libre sobre acción, recurso y actor
}

// AuditoriaRepository define el puerto de persistencia para eventos de
// auditoría. Los eventos nunca se actualizan.
type AuditoriaRepository interface {
	Create(e *entity.EventoAuditoria) error
	GetByID(id string) (*entity.EventoAuditoria, error)
	List(filtro FiltroAuditoria, limit, offset int) ([]*entity.EventoAuditoria, error)
	Count(filtro FiltroAuditoria) (int, error)
	// Purge elimina eventos anteriores al corte, excepto los exentos (CRITICAL).
	Purge(corte time.Time) (int64, error)
}
