package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementación de AuditoriaRepository. Los eventos son
// inmutables: solo INSERT, SELECT y la purga por retención.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

// Create persiste un evento de auditoría.
func (r *AuditoriaRepo) Create(e *entity.EventoAuditoria) error {
	query := `
		INSERT INTO eventos_auditoria (id, empresa_id, accion, recurso_tipo, recurso_id, severidad,
			actor_id, actor_nombre, antes, despues, ip, user_agent, exento_purga, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.EmpresaID, e.Accion, e.RecursoTipo, e.RecursoID, e.Severidad,
		e.ActorID, e.ActorNombre, e.Antes, e.Despues, e.IP, e.UserAgent, e.ExentoPurga, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert evento auditoria: %w", err)
	}
	return nil
}

// GetByID obtiene un evento por ID.
func (r *AuditoriaRepo) GetByID(id string) (*entity.EventoAuditoria, error) {
	query := auditoriaSelect + ` WHERE id = $1`
	var e entity.EventoAuditoria
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.EmpresaID, &e.Accion, &e.RecursoTipo, &e.RecursoID, &e.Severidad,
		&e.ActorID, &e.ActorNombre, &e.Antes, &e.Despues, &e.IP, &e.UserAgent,
		&e.ExentoPurga, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get evento auditoria: %w", err)
	}
	return &e, nil
}

// List devuelve eventos que cumplen el filtro, más recientes primero.
func (r *AuditoriaRepo) List(filtro repository.FiltroAuditoria, limit, offset int) ([]*entity.EventoAuditoria, error) {
	where, args := buildAuditoriaWhere(filtro)
	args = append(args, limit, offset)
	query := fmt.Sprintf("%s%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		auditoriaSelect, where, len(args)-1, len(args))
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list eventos auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.EventoAuditoria
	for rows.Next() {
		var e entity.EventoAuditoria
		if err := rows.Scan(&e.ID, &e.EmpresaID, &e.Accion, &e.RecursoTipo, &e.RecursoID,
			&e.Severidad, &e.ActorID, &e.ActorNombre, &e.Antes, &e.Despues, &e.IP,
			&e.UserAgent, &e.ExentoPurga, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan evento auditoria: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Count devuelve el total de eventos que cumplen el filtro.
func (r *AuditoriaRepo) Count(filtro repository.FiltroAuditoria) (int, error) {
	where, args := buildAuditoriaWhere(filtro)
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM eventos_auditoria`+where, args...).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count eventos auditoria: %w", err)
	}
	return total, nil
}

// Purge elimina eventos anteriores al corte, excepto los exentos (CRITICAL).
func (r *AuditoriaRepo) Purge(corte time.Time) (int64, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM eventos_auditoria WHERE created_at < $1 AND NOT exento_purga`, corte)
	if err != nil {
		return 0, fmt.Errorf("purge eventos auditoria: %w", err)
	}
	return tag.RowsAffected(), nil
}

const auditoriaSelect = `
	SELECT id, empresa_id, accion, recurso_tipo, recurso_id, severidad,
		actor_id, actor_nombre, antes, despues, ip, user_agent, exento_purga, created_at
	FROM eventos_auditoria`

// buildAuditoriaWhere arma la cláusula WHERE a partir del filtro. Los campos
// vacíos no filtran.
func buildAuditoriaWhere(f repository.FiltroAuditoria) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, val any) {
		args = append(args, val)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.EmpresaID != "" {
		add("empresa_id = $%d", f.EmpresaID)
	}
	if f.Accion != "" {
		add("accion = $%d", f.Accion)
	}
	if f.RecursoTipo != "" {
		add("recurso_tipo = $%d", f.RecursoTipo)
	}
	if f.Severidad != "" {
		add("severidad = $%d", f.Severidad)
	}
	if f.ActorID != "" {
		add("actor_id = $%d", f.ActorID)
	}
	if f.Desde != nil {
		add("created_at >= $%d", *f.Desde)
	}
	if f.Hasta != nil {
		add("created_at <= $%d", *f.Hasta)
	}
	if f.Texto != "" {
		args = append(args, "%"+f.Texto+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(accion ILIKE $%d OR recurso_tipo ILIKE $%d OR actor_nombre ILIKE $%d)", n, n, n))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
