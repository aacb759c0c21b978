package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrdenVenta representa la cabecera de una orden de venta. Puede originarse en
// una cotización aprobada o crearse directamente. Al facturarse pasa a
// FACTURADA y queda congelada.
type OrdenVenta struct {
	ID            string
	EmpresaID     string
	ClienteID     string
	CotizacionID  *string // cotización de origen, nil si se creó directa
	Numero        string
	Fecha         time.Time
	FechaEntrega  *time.Time
	Estado        string
	Subtotal      decimal.Decimal
	Descuento     decimal.Decimal
	IGV           decimal.Decimal
	Total         decimal.Decimal
	Observaciones string
	FacturaID     *string // factura generada a partir de esta orden
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrdenVentaItem es una línea de orden. El descuento es un monto fijo.
type OrdenVentaItem struct {
	ID             string
	OrdenVentaID   string
	ProductoID     string
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Descuento      decimal.Decimal // monto fijo por línea
	Subtotal       decimal.Decimal
}
