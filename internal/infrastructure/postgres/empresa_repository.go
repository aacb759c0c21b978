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

var _ repository.EmpresaRepository = (*EmpresaRepo)(nil)

// EmpresaRepo implementación de EmpresaRepository (usable con pool o tx).
type EmpresaRepo struct {
	q Querier
}

// NewEmpresaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEmpresaRepository(q Querier) *EmpresaRepo {
	return &EmpresaRepo{q: q}
}

// Create persiste una nueva empresa.
func (r *EmpresaRepo) Create(empresa *entity.Empresa) error {
	query := `
		INSERT INTO empresas (id, razon_social, ruc, tipo, direccion, telefono, email, estado, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		empresa.ID, empresa.RazonSocial, empresa.RUC, empresa.Tipo, empresa.Direccion,
		empresa.Telefono, empresa.Email, empresa.Estado, empresa.CreatedAt, empresa.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert empresa: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID.
func (r *EmpresaRepo) GetByID(id string) (*entity.Empresa, error) {
	query := `
		SELECT id, razon_social, ruc, tipo, direccion, telefono, email, estado, created_at, updated_at
		FROM empresas WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByRUC obtiene una empresa por RUC (único global).
func (r *EmpresaRepo) GetByRUC(ruc string) (*entity.Empresa, error) {
	query := `
		SELECT id, razon_social, ruc, tipo, direccion, telefono, email, estado, created_at, updated_at
		FROM empresas WHERE ruc = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ruc))
}

// Update actualiza los datos de la empresa.
func (r *EmpresaRepo) Update(empresa *entity.Empresa) error {
	query := `
		UPDATE empresas SET razon_social = $2, tipo = $3, direccion = $4, telefono = $5,
			email = $6, estado = $7, updated_at = $8
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		empresa.ID, empresa.RazonSocial, empresa.Tipo, empresa.Direccion,
		empresa.Telefono, empresa.Email, empresa.Estado, empresa.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update empresa: %w", err)
	}
	return nil
}

// List lista empresas con paginación.
func (r *EmpresaRepo) List(limit, offset int) ([]*entity.Empresa, error) {
	query := `
		SELECT id, razon_social, ruc, tipo, direccion, telefono, email, estado, created_at, updated_at
		FROM empresas ORDER BY razon_social LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Empresa
	for rows.Next() {
		var e entity.Empresa
		if err := rows.Scan(&e.ID, &e.RazonSocial, &e.RUC, &e.Tipo, &e.Direccion,
			&e.Telefono, &e.Email, &e.Estado, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Count devuelve el total de empresas.
func (r *EmpresaRepo) Count() (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(), `SELECT COUNT(*) FROM empresas`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count empresas: %w", err)
	}
	return total, nil
}

// Delete elimina una empresa por ID.
func (r *EmpresaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM empresas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete empresa: %w", err)
	}
	return nil
}

// GetConfig obtiene la configuración regional/tributaria de la empresa.
func (r *EmpresaRepo) GetConfig(empresaID string) (*entity.EmpresaConfig, error) {
	query := `
		SELECT id, empresa_id, moneda, tasa_igv, zona_horaria, formato_fecha, created_at, updated_at
		FROM empresa_configs WHERE empresa_id = $1`
	var c entity.EmpresaConfig
	err := r.q.QueryRow(context.Background(), query, empresaID).Scan(
		&c.ID, &c.EmpresaID, &c.Moneda, &c.TasaIGV, &c.ZonaHoraria, &c.FormatoFecha,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa config: %w", err)
	}
	return &c, nil
}

// SaveConfig inserta o actualiza la configuración de la empresa (una fila por empresa).
func (r *EmpresaRepo) SaveConfig(cfg *entity.EmpresaConfig) error {
	query := `
		INSERT INTO empresa_configs (id, empresa_id, moneda, tasa_igv, zona_horaria, formato_fecha, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (empresa_id) DO UPDATE SET
			moneda = EXCLUDED.moneda, tasa_igv = EXCLUDED.tasa_igv,
			zona_horaria = EXCLUDED.zona_horaria, formato_fecha = EXCLUDED.formato_fecha,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		cfg.ID, cfg.EmpresaID, cfg.Moneda, cfg.TasaIGV, cfg.ZonaHoraria, cfg.FormatoFecha,
		cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save empresa config: %w", err)
	}
	return nil
}

func (r *EmpresaRepo) scanOne(row pgx.Row) (*entity.Empresa, error) {
	var e entity.Empresa
	err := row.Scan(&e.ID, &e.RazonSocial, &e.RUC, &e.Tipo, &e.Direccion,
		&e.Telefono, &e.Email, &e.Estado, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get empresa: %w", err)
	}
	return &e, nil
}
