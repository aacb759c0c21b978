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

var _ repository.ClienteRepository = (*ClienteRepo)(nil)

// ClienteRepo implementación de ClienteRepository (usable con pool o tx).
type ClienteRepo struct {
	q Querier
}

// NewClienteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewClienteRepository(q Querier) *ClienteRepo {
	return &ClienteRepo{q: q}
}

// Create persiste un nuevo cliente.
func (r *ClienteRepo) Create(cliente *entity.Cliente) error {
	query := `
		INSERT INTO clientes (id, empresa_id, nombre, documento, email, telefono, direccion, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.EmpresaID, cliente.Nombre, cliente.Documento,
		cliente.Email, cliente.Telefono, cliente.Direccion, cliente.CreatedAt, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *ClienteRepo) GetByID(id string) (*entity.Cliente, error) {
	query := `
		SELECT id, empresa_id, nombre, documento, email, telefono, direccion, created_at, updated_at
		FROM clientes WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmpresaAndDocumento obtiene un cliente por empresa y RUC/DNI.
func (r *ClienteRepo) GetByEmpresaAndDocumento(empresaID, documento string) (*entity.Cliente, error) {
	query := `
		SELECT id, empresa_id, nombre, documento, email, telefono, direccion, created_at, updated_at
		FROM clientes WHERE empresa_id = $1 AND documento = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, empresaID, documento))
}

// ListByEmpresa lista clientes de la empresa con paginación.
func (r *ClienteRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cliente, error) {
	query := `
		SELECT id, empresa_id, nombre, documento, email, telefono, direccion, created_at, updated_at
		FROM clientes WHERE empresa_id = $1 ORDER BY nombre LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cliente
	for rows.Next() {
		var c entity.Cliente
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.Nombre, &c.Documento,
			&c.Email, &c.Telefono, &c.Direccion, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByEmpresa devuelve el total de clientes de la empresa.
func (r *ClienteRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM clientes WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count clientes: %w", err)
	}
	return total, nil
}

// Update actualiza un cliente.
func (r *ClienteRepo) Update(cliente *entity.Cliente) error {
	query := `
		UPDATE clientes SET nombre = $2, documento = $3, email = $4, telefono = $5,
			direccion = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		cliente.ID, cliente.Nombre, cliente.Documento, cliente.Email,
		cliente.Telefono, cliente.Direccion, cliente.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update cliente: %w", err)
	}
	return nil
}

// Delete elimina un cliente por ID.
func (r *ClienteRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cliente: %w", err)
	}
	return nil
}

func (r *ClienteRepo) scanOne(row pgx.Row) (*entity.Cliente, error) {
	var c entity.Cliente
	err := row.Scan(&c.ID, &c.EmpresaID, &c.Nombre, &c.Documento,
		&c.Email, &c.Telefono, &c.Direccion, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return &c, nil
}
