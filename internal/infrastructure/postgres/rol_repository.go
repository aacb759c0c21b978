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

var _ repository.RolRepository = (*RolRepo)(nil)

// RolRepo implementación de RolRepository (usable con pool o tx).
type RolRepo struct {
	q Querier
}

// NewRolRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRolRepository(q Querier) *RolRepo {
	return &RolRepo{q: q}
}

// Create persiste un nuevo rol.
func (r *RolRepo) Create(rol *entity.Rol) error {
	query := `
		INSERT INTO roles (id, empresa_id, nombre, descripcion, es_sistema, horario_inicio, horario_fin,
			fecha_inicio, fecha_fin, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		rol.ID, nullIfEmpty(rol.EmpresaID), rol.Nombre, rol.Descripcion, rol.EsSistema,
		rol.HorarioInicio, rol.HorarioFin, rol.FechaInicio, rol.FechaFin,
		rol.Estado, rol.CreatedAt, rol.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert rol: %w", err)
	}
	return nil
}

// GetByID obtiene un rol por ID.
func (r *RolRepo) GetByID(id string) (*entity.Rol, error) {
	query := rolSelect + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByNombre busca un rol por nombre dentro de una empresa (unicidad).
func (r *RolRepo) GetByNombre(empresaID, nombre string) (*entity.Rol, error) {
	query := rolSelect + ` WHERE empresa_id = $1 AND nombre = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, empresaID, nombre))
}

// ListByEmpresa lista roles de la empresa con paginación.
func (r *RolRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Rol, error) {
	query := rolSelect + ` WHERE empresa_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer rows.Close()
	return r.scanRows(rows)
}

// CountByEmpresa devuelve el total de roles de la empresa.
func (r *RolRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM roles WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count roles: %w", err)
	}
	return total, nil
}

// Update actualiza un rol.
func (r *RolRepo) Update(rol *entity.Rol) error {
	query := `
		UPDATE roles SET nombre = $2, descripcion = $3, horario_inicio = $4, horario_fin = $5,
			fecha_inicio = $6, fecha_fin = $7, estado = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rol.ID, rol.Nombre, rol.Descripcion, rol.HorarioInicio, rol.HorarioFin,
		rol.FechaInicio, rol.FechaFin, rol.Estado, rol.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update rol: %w", err)
	}
	return nil
}

// Delete elimina un rol por ID (sus permisos caen por FK en cascada).
func (r *RolRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete rol: %w", err)
	}
	return nil
}

const rolSelect = `
	SELECT id, COALESCE(empresa_id, ''), nombre, descripcion, es_sistema, horario_inicio, horario_fin,
		fecha_inicio, fecha_fin, estado, created_at, updated_at
	FROM roles`

func (r *RolRepo) scanOne(row pgx.Row) (*entity.Rol, error) {
	var rol entity.Rol
	err := row.Scan(&rol.ID, &rol.EmpresaID, &rol.Nombre, &rol.Descripcion, &rol.EsSistema,
		&rol.HorarioInicio, &rol.HorarioFin, &rol.FechaInicio, &rol.FechaFin,
		&rol.Estado, &rol.CreatedAt, &rol.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get rol: %w", err)
	}
	return &rol, nil
}

func (r *RolRepo) scanRows(rows pgx.Rows) ([]*entity.Rol, error) {
	var list []*entity.Rol
	for rows.Next() {
		var rol entity.Rol
		if err := rows.Scan(&rol.ID, &rol.EmpresaID, &rol.Nombre, &rol.Descripcion, &rol.EsSistema,
			&rol.HorarioInicio, &rol.HorarioFin, &rol.FechaInicio, &rol.FechaFin,
			&rol.Estado, &rol.CreatedAt, &rol.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan rol: %w", err)
		}
		list = append(list, &rol)
	}
	return list, rows.Err()
}

// nullIfEmpty convierte "" en NULL (columnas con unicidad parcial o FK opcional).
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
