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

var _ repository.OrdenVentaRepository = (*OrdenVentaRepo)(nil)

// OrdenVentaRepo implementación de OrdenVentaRepository (usable con pool o tx).
type OrdenVentaRepo struct {
	q Querier
}

// NewOrdenVentaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrdenVentaRepository(q Querier) *OrdenVentaRepo {
	return &OrdenVentaRepo{q: q}
}

// Create persiste la cabecera de una orden de venta.
func (r *OrdenVentaRepo) Create(o *entity.OrdenVenta) error {
	query := `
		INSERT INTO ordenes_venta (id, empresa_id, cliente_id, cotizacion_id, numero, fecha, fecha_entrega,
			estado, subtotal, descuento, igv, total, observaciones, factura_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.EmpresaID, o.ClienteID, o.CotizacionID, o.Numero, o.Fecha, o.FechaEntrega,
		o.Estado, o.Subtotal, o.Descuento, o.IGV, o.Total, o.Observaciones, o.FacturaID,
		o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden venta: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de orden de venta.
func (r *OrdenVentaRepo) CreateItem(item *entity.OrdenVentaItem) error {
	query := `
		INSERT INTO orden_venta_items (id, orden_venta_id, producto_id, descripcion, cantidad,
			precio_unitario, descuento, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrdenVentaID, nullIfEmpty(item.ProductoID), item.Descripcion,
		item.Cantidad, item.PrecioUnitario, item.Descuento, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert orden venta item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una orden de venta.
func (r *OrdenVentaRepo) GetByID(id string) (*entity.OrdenVenta, error) {
	query := ordenSelect + ` WHERE id = $1`
	var o entity.OrdenVenta
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.EmpresaID, &o.ClienteID, &o.CotizacionID, &o.Numero, &o.Fecha, &o.FechaEntrega,
		&o.Estado, &o.Subtotal, &o.Descuento, &o.IGV, &o.Total, &o.Observaciones, &o.FacturaID,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden venta: %w", err)
	}
	return &o, nil
}

// GetItems devuelve las líneas de la orden.
func (r *OrdenVentaRepo) GetItems(ordenID string) ([]*entity.OrdenVentaItem, error) {
	query := `
		SELECT id, orden_venta_id, COALESCE(producto_id, ''), descripcion, cantidad,
			precio_unitario, descuento, subtotal
		FROM orden_venta_items WHERE orden_venta_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, ordenID)
	if err != nil {
		return nil, fmt.Errorf("list orden venta items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OrdenVentaItem
	for rows.Next() {
		var it entity.OrdenVentaItem
		if err := rows.Scan(&it.ID, &it.OrdenVentaID, &it.ProductoID, &it.Descripcion,
			&it.Cantidad, &it.PrecioUnitario, &it.Descuento, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan orden venta item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByEmpresa lista órdenes de la empresa, más recientes primero.
func (r *OrdenVentaRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.OrdenVenta, error) {
	query := ordenSelect + ` WHERE empresa_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list ordenes venta: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrdenVenta
	for rows.Next() {
		var o entity.OrdenVenta
		if err := rows.Scan(&o.ID, &o.EmpresaID, &o.ClienteID, &o.CotizacionID, &o.Numero,
			&o.Fecha, &o.FechaEntrega, &o.Estado, &o.Subtotal, &o.Descuento, &o.IGV, &o.Total,
			&o.Observaciones, &o.FacturaID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan orden venta: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

// CountByEmpresa devuelve el total de órdenes de la empresa.
func (r *OrdenVentaRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM ordenes_venta WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count ordenes venta: %w", err)
	}
	return total, nil
}

// Update actualiza la cabecera de la orden.
func (r *OrdenVentaRepo) Update(o *entity.OrdenVenta) error {
	query := `
		UPDATE ordenes_venta SET cliente_id = $2, fecha = $3, fecha_entrega = $4, estado = $5,
			subtotal = $6, descuento = $7, igv = $8, total = $9, observaciones = $10,
			factura_id = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		o.ID, o.ClienteID, o.Fecha, o.FechaEntrega, o.Estado,
		o.Subtotal, o.Descuento, o.IGV, o.Total, o.Observaciones,
		o.FacturaID, o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden venta: %w", err)
	}
	return nil
}

// DeleteItems elimina todas las líneas de la orden (re-escritura en tx).
func (r *OrdenVentaRepo) DeleteItems(ordenID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM orden_venta_items WHERE orden_venta_id = $1`, ordenID)
	if err != nil {
		return fmt.Errorf("delete orden venta items: %w", err)
	}
	return nil
}

// Delete elimina la orden (las líneas caen por FK en cascada).
func (r *OrdenVentaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM ordenes_venta WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete orden venta: %w", err)
	}
	return nil
}

const ordenSelect = `
	SELECT id, empresa_id, cliente_id, cotizacion_id, numero, fecha, fecha_entrega,
		estado, subtotal, descuento, igv, total, observaciones, factura_id, created_at, updated_at
	FROM ordenes_venta`
