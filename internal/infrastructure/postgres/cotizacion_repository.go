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

var _ repository.CotizacionRepository = (*CotizacionRepo)(nil)

// CotizacionRepo implementación de CotizacionRepository (usable con pool o tx).
type CotizacionRepo struct {
	q Querier
}

// NewCotizacionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCotizacionRepository(q Querier) *CotizacionRepo {
	return &CotizacionRepo{q: q}
}

// Create persiste la cabecera de una cotización.
func (r *CotizacionRepo) Create(c *entity.Cotizacion) error {
	query := `
		INSERT INTO cotizaciones (id, empresa_id, cliente_id, numero, fecha, fecha_vencimiento, estado,
			subtotal, descuento, igv, total, observaciones, orden_venta_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.EmpresaID, c.ClienteID, c.Numero, c.Fecha, c.FechaVencimiento, c.Estado,
		c.Subtotal, c.Descuento, c.IGV, c.Total, c.Observaciones, c.OrdenVentaID,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cotizacion: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de cotización.
func (r *CotizacionRepo) CreateItem(item *entity.CotizacionItem) error {
	query := `
		INSERT INTO cotizacion_items (id, cotizacion_id, producto_id, descripcion, cantidad,
			precio_unitario, descuento_porcentaje, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.CotizacionID, nullIfEmpty(item.ProductoID), item.Descripcion,
		item.Cantidad, item.PrecioUnitario, item.DescuentoPorcentaje, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert cotizacion item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una cotización.
func (r *CotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) {
	query := cotizacionSelect + ` WHERE id = $1`
	var c entity.Cotizacion
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.EmpresaID, &c.ClienteID, &c.Numero, &c.Fecha, &c.FechaVencimiento, &c.Estado,
		&c.Subtotal, &c.Descuento, &c.IGV, &c.Total, &c.Observaciones, &c.OrdenVentaID,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cotizacion: %w", err)
	}
	return &c, nil
}

// GetItems devuelve las líneas de la cotización.
func (r *CotizacionRepo) GetItems(cotizacionID string) ([]*entity.CotizacionItem, error) {
	query := `
		SELECT id, cotizacion_id, COALESCE(producto_id, ''), descripcion, cantidad,
			precio_unitario, descuento_porcentaje, subtotal
		FROM cotizacion_items WHERE cotizacion_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, cotizacionID)
	if err != nil {
		return nil, fmt.Errorf("list cotizacion items: %w", err)
	}
	defer rows.Close()
	var items []*entity.CotizacionItem
	for rows.Next() {
		var it entity.CotizacionItem
		if err := rows.Scan(&it.ID, &it.CotizacionID, &it.ProductoID, &it.Descripcion,
			&it.Cantidad, &it.PrecioUnitario, &it.DescuentoPorcentaje, &it.Subtotal); err != nil {
			return nil, fmt.Errorf("scan cotizacion item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// ListByEmpresa lista cotizaciones de la empresa, más recientes primero.
func (r *CotizacionRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cotizacion, error) {
	query := cotizacionSelect + ` WHERE empresa_id = $1 ORDER BY fecha DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, empresaID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cotizaciones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Cotizacion
	for rows.Next() {
		var c entity.Cotizacion
		if err := rows.Scan(&c.ID, &c.EmpresaID, &c.ClienteID, &c.Numero, &c.Fecha,
			&c.FechaVencimiento, &c.Estado, &c.Subtotal, &c.Descuento, &c.IGV, &c.Total,
			&c.Observaciones, &c.OrdenVentaID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cotizacion: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// CountByEmpresa devuelve el total de cotizaciones de la empresa.
func (r *CotizacionRepo) CountByEmpresa(empresaID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM cotizaciones WHERE empresa_id = $1`, empresaID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count cotizaciones: %w", err)
	}
	return total, nil
}

// Update actualiza la cabecera de la cotización.
func (r *CotizacionRepo) Update(c *entity.Cotizacion) error {
	query := `
		UPDATE cotizaciones SET cliente_id = $2, fecha = $3, fecha_vencimiento = $4, estado = $5,
			subtotal = $6, descuento = $7, igv = $8, total = $9, observaciones = $10,
			orden_venta_id = $11, updated_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.ClienteID, c.Fecha, c.FechaVencimiento, c.Estado,
		c.Subtotal, c.Descuento, c.IGV, c.Total, c.Observaciones,
		c.OrdenVentaID, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update cotizacion: %w", err)
	}
	return nil
}

// DeleteItems elimina todas las líneas de la cotización (re-escritura en tx).
func (r *CotizacionRepo) DeleteItems(cotizacionID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM cotizacion_items WHERE cotizacion_id = $1`, cotizacionID)
	if err != nil {
		return fmt.Errorf("delete cotizacion items: %w", err)
	}
	return nil
}

// Delete elimina la cotización (las líneas caen por FK en cascada).
func (r *CotizacionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM cotizaciones WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete cotizacion: %w", err)
	}
	return nil
}

const cotizacionSelect = `
	SELECT id, empresa_id, cliente_id, numero, fecha, fecha_vencimiento, estado,
		subtotal, descuento, igv, total, observaciones, orden_venta_id, created_at, updated_at
	FROM cotizaciones`
