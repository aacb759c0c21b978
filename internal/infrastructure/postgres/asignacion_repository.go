package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

var _ repository.AsignacionRepository = (*AsignacionRepo)(nil)

// AsignacionRepo implementación de AsignacionRepository (usuario-rol).
type AsignacionRepo struct {
	q Querier
}

// NewAsignacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAsignacionRepository(q Querier) *AsignacionRepo {
	return &AsignacionRepo{q: q}
}

// Create persiste una nueva asignación usuario-rol.
func (r *AsignacionRepo) Create(a *entity.UsuarioRol) error {
	query := `
		INSERT INTO usuario_roles (id, usuario_id, rol_id, empresa_id, fecha_inicio, fecha_fin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UsuarioID, a.RolID, nullIfEmpty(a.EmpresaID), a.FechaInicio, a.FechaFin, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert usuario_rol: %w", err)
	}
	return nil
}

// GetByID obtiene una asignación por ID.
func (r *AsignacionRepo) GetByID(id string) (*entity.UsuarioRol, error) {
	query := asignacionSelect + ` WHERE id = $1`
	var a entity.UsuarioRol
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.UsuarioID, &a.RolID, &a.EmpresaID, &a.FechaInicio, &a.FechaFin, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario_rol: %w", err)
	}
	return &a, nil
}

// Finalizar cierra la asignación fijando fecha_fin.
func (r *AsignacionRepo) Finalizar(id string, fechaFin time.Time) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuario_roles SET fecha_fin = $2 WHERE id = $1`, id, fechaFin)
	if err != nil {
		return fmt.Errorf("finalizar usuario_rol: %w", err)
	}
	return nil
}

// ListActivasByUsuario devuelve las asignaciones vigentes del usuario en la
// empresa, ordenadas por fecha de creación ascendente (orden de resolución).
func (r *AsignacionRepo) ListActivasByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioRol, error) {
	query := asignacionSelect + `
		WHERE usuario_id = $1 AND empresa_id = $2 AND (fecha_fin IS NULL OR fecha_fin > NOW())
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, usuarioID, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list asignaciones activas: %w", err)
	}
	defer rows.Close()
	return scanAsignaciones(rows)
}

// ListActivasSistema devuelve las asignaciones vigentes del usuario sobre
// roles de sistema (sin empresa).
func (r *AsignacionRepo) ListActivasSistema(usuarioID string) ([]*entity.UsuarioRol, error) {
	query := asignacionSelect + `
		WHERE usuario_id = $1 AND empresa_id IS NULL AND (fecha_fin IS NULL OR fecha_fin > NOW())
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, usuarioID)
	if err != nil {
		return nil, fmt.Errorf("list asignaciones sistema: %w", err)
	}
	defer rows.Close()
	return scanAsignaciones(rows)
}

// CountActivasByRol cuenta las asignaciones vigentes de un rol (bloqueo de borrado).
func (r *AsignacionRepo) CountActivasByRol(rolID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM usuario_roles WHERE rol_id = $1 AND (fecha_fin IS NULL OR fecha_fin > NOW())`,
		rolID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count asignaciones: %w", err)
	}
	return total, nil
}

// ListByRol lista todas las asignaciones de un rol con paginación.
func (r *AsignacionRepo) ListByRol(rolID string, limit, offset int) ([]*entity.UsuarioRol, error) {
	query := asignacionSelect + ` WHERE rol_id = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, rolID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list asignaciones por rol: %w", err)
	}
	defer rows.Close()
	return scanAsignaciones(rows)
}

const asignacionSelect = `
	SELECT id, usuario_id, rol_id, COALESCE(empresa_id, ''), fecha_inicio, fecha_fin, created_at
	FROM usuario_roles`

func scanAsignaciones(rows pgx.Rows) ([]*entity.UsuarioRol, error) {
	var list []*entity.UsuarioRol
	for rows.Next() {
		var a entity.UsuarioRol
		if err := rows.Scan(&a.ID, &a.UsuarioID, &a.RolID, &a.EmpresaID,
			&a.FechaInicio, &a.FechaFin, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario_rol: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}
