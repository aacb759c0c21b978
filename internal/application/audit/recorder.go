// Package audit implementa el registro inmutable de eventos de auditoría:
// validación, enriquecimiento con actor/IP, redacción de campos sensibles,
// límite de eventos por actor y exención de purga para severidad CRITICAL.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
	"github.com/gestium/gestium-api/pkg/logger"
)

// Contexto identifica al actor y su origen al registrar un evento.
type Contexto struct {
	EmpresaID   string
	ActorID     string
	ActorNombre string
	IP          string
	UserAgent   string
}

// Recorder registra eventos de auditoría.
type Recorder struct {
	repo    repository.AuditoriaRepository
	limiter *RateLimiter
	log     *logger.Logger
}

// NewRecorder construye el recorder.
func NewRecorder(repo repository.AuditoriaRepository, limiter *RateLimiter, log *logger.Logger) *Recorder {
	return &Recorder{repo: repo, limiter: limiter, log: log}
}

// Record valida, enriquece, redacta y persiste un evento. Severidad vacía se
// registra como INFO. Devuelve ErrRateLimited si el actor agotó su cupo por
// minuto. Los eventos CRITICAL generan además un warning en el log y quedan
// exentos de la purga por retención.
func (r *Recorder) Record(in dto.RegistrarEventoRequest, ctx Contexto) (*dto.EventoResponse, error) {
	if in.Accion == "" || in.RecursoTipo == "" {
		return nil, domain.ErrInvalidInput
	}
	severidad := in.Severidad
	if severidad == "" {
		severidad = entity.SeveridadInfo
	}
	if !entity.SeveridadValida(severidad) {
		return nil, domain.ErrInvalidInput
	}
	if ctx.ActorID == "" || ctx.EmpresaID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !r.limiter.Allow(ctx.ActorID) {
		return nil, domain.ErrRateLimited
	}

	evento := &entity.EventoAuditoria{
		ID:          uuid.New().String(),
		EmpresaID:   ctx.EmpresaID,
		Accion:      in.Accion,
		RecursoTipo: in.RecursoTipo,
		RecursoID:   in.RecursoID,
		Severidad:   severidad,
		ActorID:     ctx.ActorID,
		ActorNombre: ctx.ActorNombre,
		Antes:       Redactar(in.Antes),
		Despues:     Redactar(in.Despues),
		IP:          ctx.IP,
		UserAgent:   ctx.UserAgent,
		ExentoPurga: severidad == entity.SeveridadCritical,
		CreatedAt:   time.Now(),
	}
	if evento.ExentoPurga {
		r.log.Warn().
			Str("accion", evento.Accion).
			Str("recurso", evento.RecursoTipo).
			Str("actor_id", evento.ActorID).
			Str("empresa_id", evento.EmpresaID).
			Msg("evento de auditoría CRITICAL registrado")
	}
	if err := r.repo.Create(evento); err != nil {
		return nil, err
	}
	return toEventoResponse(evento), nil
}

// Purge elimina eventos anteriores al periodo de retención. Los eventos
// CRITICAL están exentos. Devuelve la cantidad eliminada.
func (r *Recorder) Purge(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, domain.ErrInvalidInput
	}
	corte := time.Now().AddDate(0, 0, -retentionDays)
	n, err := r.repo.Purge(corte)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		r.log.Info().Int64("eliminados", n).Time("corte", corte).Msg("purga de auditoría completada")
	}
	return n, nil
}

func toEventoResponse(e *entity.EventoAuditoria) *dto.EventoResponse {
	return &dto.EventoResponse{
		ID:          e.ID,
		EmpresaID:   e.EmpresaID,
		Accion:      e.Accion,
		RecursoTipo: e.RecursoTipo,
		RecursoID:   e.RecursoID,
		Severidad:   e.Severidad,
		ActorID:     e.ActorID,
		ActorNombre: e.ActorNombre,
		Antes:       e.Antes,
		Despues:     e.Despues,
		IP:          e.IP,
		UserAgent:   e.UserAgent,
		CreatedAt:   e.CreatedAt,
	}
}
