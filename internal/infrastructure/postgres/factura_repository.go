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

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación de FacturaRepository (usable con pool o tx).
type FacturaRepo struct {
	q Querier
}

// NewFacturaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFacturaRepository(q Querier) *FacturaRepo {
	return &FacturaRepo{q: q}
}

// Create persiste la cabecera de una factura.
func (r *FacturaRepo) Create(f *entity.Factura) error {
	query := `
		INSERT INTO facturas (id, empresa_id, cliente_id, orden_venta_id, serie, numero, fecha,
			estado, subtotal, descuento, igv, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		f.ID, f.EmpresaID, f.ClienteID, f.OrdenVentaID, f.Serie, f.Numero, f.Fecha,
		f.Estado, f.Subtotal, f.Descuento, f.IGV, f.Total, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert factura: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de factura.
func (r *FacturaRepo) CreateItem(item *entity.FacturaItem) error {
	query := `
		INSERT INTO factura_items (id, factura_id, producto_id, descripcion, cantidad,
			precio_unitario, descuento, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.FacturaID, nullIfEmpty(item.ProductoID), item.Descripcion,
		item.Cantidad, item.PrecioUnitario, item.Descuento, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert factura item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *FacturaRepo) GetByID(id string) (*entity.Factura, error) {
	query := facturaSelect + ` WHERE id = $1`
	var f entity.Factura
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&f.ID, &f.EmpresaID, &f.ClienteID, &f.OrdenVentaID, &f.Serie, &f.Numero, &f.Fecha,
		&f.Estado, &f.Subtotal, &f.Descuento, &f.IGV, &f.Total, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get factura: %w", err)
	}
	return &f, nil
}

// GetItems devuelve las líneas de la factura.
func (r *FacturaRepo) GetItems(facturaID string) ([]*entity.FacturaItem, error) {
	query := `
		SELECT id, factura_id, COALESCE(producto_id, ''), descripcion, cantidad,
			precio_unitario, descuento, subtotal
		FROM factura_items WHERE factura_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, facturaID)
	if err != nil {
		return nil, fmt.Errorf("list factura items: %w", err)
	}
	defer rows.Close()
	var items []*entity.FacturaItem
	for rows.Next() {
		var it entity.FacturaItem
		if err := rows.Scan(&it.ID, &it.FacturaID, &it.ProductoID, &it.Descripcion,
			&it.Cantidad, &it.PrecioUnitario, &it.Descuento, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan factura item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByEmpresa lista facturas de la empresa, más recientes primero.
func (r *FacturaRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Factura, error) {
	query := facturaSelect + ` WHERE empresa_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list facturas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Factura
	for rows.Next() {
		var f entity.Factura
		if err := rows.Scan(&f.ID, &f.EmpresaID, &f.ClienteID, &f.OrdenVentaID, &f.Serie,
			&f.Numero, &f.Fecha, &f.Estado, &f.Subtotal, &f.Descuento, &f.IGV, &f.Total,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan factura: %w", err)
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// CountByEmpresa devuelve el total de facturas de la empresa.
func (r *FacturaRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM facturas WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count facturas: %w", err)
	}
	return total, nil
}

// Update actualiza la cabecera de la factura (cambios de estado).
func (r *FacturaRepo) Update(f *entity.Factura) error {
	query := `
		UPDATE facturas SET estado = $2, updated_at = $3 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, f.ID, f.Estado, f.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update factura: %w", err)
	}
	return nil
}

const facturaSelect = `
	SELECT id, empresa_id, cliente_id, orden_venta_id, serie, numero, fecha,
		estado, subtotal, descuento, igv, total, created_at, updated_at
	FROM facturas`
