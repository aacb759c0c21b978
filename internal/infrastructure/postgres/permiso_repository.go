package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

var _ repository.PermisoRepository = (*PermisoRepo)(nil)

// PermisoRepo implementación de PermisoRepository: catálogo global, permisos
// por rol y permisos directos por usuario.
type PermisoRepo struct {
	q Querier
}

// NewPermisoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPermisoRepository(q Querier) *PermisoRepo {
	return &PermisoRepo{q: q}
}

// GetByID obtiene una entrada del catálogo por ID.
func (r *PermisoRepo) GetByID(id string) (*entity.Permiso, error) {
	query := `SELECT id, recurso, accion, descripcion, created_at FROM permisos WHERE id = $1`
	return r.scanPermiso(r.q.QueryRow(context.Background(), query, id))
}

// GetByRecursoAccion busca una entrada del catálogo por el par (recurso, acción).
func (r *PermisoRepo) GetByRecursoAccion(recurso, accion string) (*entity.Permiso, error) {
	query := `SELECT id, recurso, accion, descripcion, created_at FROM permisos WHERE recurso = $1 AND accion = $2`
	return r.scanPermiso(r.q.QueryRow(context.Background(), query, recurso, accion))
}

// List devuelve el catálogo completo de permisos.
func (r *PermisoRepo) List() ([]*entity.Permiso, error) {
	query := `SELECT id, recurso, accion, descripcion, created_at FROM permisos ORDER BY recurso, accion`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Permiso
	for rows.Next() {
		var p entity.Permiso
		if err := rows.Scan(&p.ID, &p.Recurso, &p.Accion, &p.Descripcion, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan permiso: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// AddToRol asocia un permiso a un rol guardando el snapshot de recurso/acción.
func (r *PermisoRepo) AddToRol(rp *entity.RolPermiso) error {
	query := `
		INSERT INTO rol_permisos (id, rol_id, permiso_id, recurso, accion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		rp.ID, rp.RolID, rp.PermisoID, rp.Recurso, rp.Accion, rp.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rol_permiso: %w", err)
	}
	return nil
}

// RemoveFromRol quita un permiso de un rol.
func (r *PermisoRepo) RemoveFromRol(rolID, permisoID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM rol_permisos WHERE rol_id = $1 AND permiso_id = $2`, rolID, permisoID)
	if err != nil {
		return fmt.Errorf("delete rol_permiso: %w", err)
	}
	return nil
}

// ListByRol devuelve los permisos asociados a un rol.
func (r *PermisoRepo) ListByRol(rolID string) ([]*entity.RolPermiso, error) {
	query := `
		SELECT id, rol_id, permiso_id, recurso, accion, created_at
		FROM rol_permisos WHERE rol_id = $1 ORDER BY recurso, accion`
	rows, err := r.q.Query(context.Background(), query, rolID)
	if err != nil {
		return nil, fmt.Errorf("list rol_permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.RolPermiso
	for rows.Next() {
		var rp entity.RolPermiso
		if err := rows.Scan(&rp.ID, &rp.RolID, &rp.PermisoID, &rp.Recurso, &rp.Accion, &rp.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan rol_permiso: %w", err)
		}
		list = append(list, &rp)
	}
	return list, rows.Err()
}

// GrantDirecto otorga un permiso directo a un usuario.
func (r *PermisoRepo) GrantDirecto(up *entity.UsuarioPermiso) error {
	query := `
		INSERT INTO usuario_permisos (id, usuario_id, empresa_id, recurso, accion, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		up.ID, up.UsuarioID, up.EmpresaID, up.Recurso, up.Accion, up.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario_permiso: %w", err)
	}
	return nil
}

// RevokeDirecto revoca un permiso directo de un usuario.
func (r *PermisoRepo) RevokeDirecto(usuarioID, empresaID, recurso, accion string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM usuario_permisos WHERE usuario_id = $1 AND empresa_id = $2 AND recurso = $3 AND accion = $4`,
		usuarioID, empresaID, recurso, accion)
	if err != nil {
		return fmt.Errorf("delete usuario_permiso: %w", err)
	}
	return nil
}

// ListDirectosByUsuario devuelve los permisos directos del usuario en la empresa.
func (r *PermisoRepo) ListDirectosByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioPermiso, error) {
	query := `
		SELECT id, usuario_id, empresa_id, recurso, accion, created_at
		FROM usuario_permisos WHERE usuario_id = $1 AND empresa_id = $2`
	rows, err := r.q.Query(context.Background(), query, usuarioID, empresaID)
	if err != nil {
		return nil, fmt.Errorf("list usuario_permisos: %w", err)
	}
	defer rows.Close()
	var list []*entity.UsuarioPermiso
	for rows.Next() {
		var up entity.UsuarioPermiso
		if err := rows.Scan(&up.ID, &up.UsuarioID, &up.EmpresaID, &up.Recurso, &up.Accion, &up.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan usuario_permiso: %w", err)
		}
		list = append(list, &up)
	}
	return list, rows.Err()
}

func (r *PermisoRepo) scanPermiso(row pgx.Row) (*entity.Permiso, error) {
	var p entity.Permiso
	err := row.Scan(&p.ID, &p.Recurso, &p.Accion, &p.Descripcion, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get permiso: %w", err)
	}
	return &p, nil
}
