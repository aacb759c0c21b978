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

var _ repository.NotaRepository = (*NotaRepo)(nil)

// NotaRepo implementación de NotaRepository para notas de crédito/débito.
type NotaRepo struct {
	q Querier
}

// NewNotaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotaRepository(q Querier) *NotaRepo {
	return &NotaRepo{q: q}
}

// Create persiste la cabecera de una nota.
func (r *NotaRepo) Create(n *entity.Nota) error {
	query := `
		INSERT INTO notas (id, empresa_id, cliente_id, factura_id, tipo, numero, fecha, motivo,
			estado, subtotal, descuento, igv, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		n.ID, n.EmpresaID, n.ClienteID, n.FacturaID, n.Tipo, n.Numero, n.Fecha, n.Motivo,
		n.Estado, n.Subtotal, n.Descuento, n.IGV, n.Total, n.CreatedAt, n.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert nota: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de nota.
func (r *NotaRepo) CreateItem(item *entity.NotaItem) error {
	query := `
		INSERT INTO nota_items (id, nota_id, producto_id, descripcion, cantidad,
			precio_unitario, descuento, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.NotaID, nullIfEmpty(item.ProductoID), item.Descripcion,
		item.Cantidad, item.PrecioUnitario, item.Descuento, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert nota item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una nota.
func (r *NotaRepo) GetByID(id string) (*entity.Nota, error) {
	query := notaSelect + ` WHERE id = $1`
	var n entity.Nota
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&n.ID, &n.EmpresaID, &n.ClienteID, &n.FacturaID, &n.Tipo, &n.Numero, &n.Fecha, &n.Motivo,
		&n.Estado, &n.Subtotal, &n.Descuento, &n.IGV, &n.Total, &n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get nota: %w", err)
	}
	return &n, nil
}

// GetItems devuelve las líneas de la nota.
func (r *NotaRepo) GetItems(notaID string) ([]*entity.NotaItem, error) {
	query := `
		SELECT id, nota_id, COALESCE(producto_id, ''), descripcion, cantidad,
			precio_unitario, descuento, subtotal
		FROM nota_items WHERE nota_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list nota items: %w", err)
	}
	defer rows.Close()
	var items []*entity.NotaItem
	for rows.Next() {
		var it entity.NotaItem
		if err := rows.Scan(&it.ID, &it.NotaID, &it.ProductoID, &it.Descripcion,
			&it.Cantidad, &it.PrecioUnitario, &it.Descuento, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan nota item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByFactura devuelve las notas emitidas contra una factura.
func (r *NotaRepo) ListByFactura(facturaID string) ([]*entity.Nota, error) {
	query := notaSelect + ` WHERE factura_id = $1 ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list notas por factura: %w", err)
	}
	defer rows.Close()
	return scanNotas(rows)
}

// ListByEmpresa lista notas de la empresa, más recientes primero.
func (r *NotaRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Nota, error) {
	query := notaSelect + ` WHERE empresa_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notas: %w", err)
	}
	defer rows.Close()
	return scanNotas(rows)
}

// CountByEmpresa devuelve el total de notas de la empresa.
func (r *NotaRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM notas WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count notas: %w", err)
	}
	return total, nil
}

// Update actualiza la cabecera de la nota (cambios de estado).
func (r *NotaRepo) Update(n *entity.Nota) error {
	query := `UPDATE notas SET estado = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, n.ID, n.Estado, n.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update nota: %w", err)
	}
	return nil
}

const notaSelect = `
	SELECT id, empresa_id, cliente_id, factura_id, tipo, numero, fecha, motivo,
		estado, subtotal, descuento, igv, total, created_at, updated_at
	FROM notas`

func scanNotas(rows pgx.Rows) ([]*entity.Nota, error) {
	var list []*entity.Nota
	for rows.Next() {
		var n entity.Nota
		if err := rows.Scan(&n.ID, &n.EmpresaID, &n.ClienteID, &n.FacturaID, &n.Tipo,
			&n.Numero, &n.Fecha, &n.Motivo, &n.Estado, &n.Subtotal, &n.Descuento,
			&n.IGV, &n.Total, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan nota: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}
