package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Factura representa la cabecera de una factura. Se genera desde una orden de
// venta; PAGADA y ANULADA son estados terminales.
type Factura struct {
	ID           string
	EmpresaID    string
	ClienteID    string
	OrdenVentaID *string
	Serie        string
	Numero       string
	Fecha        time.Time
	Estado       string
	Subtotal     decimal.Decimal
	Descuento    decimal.Decimal
	IGV          decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FacturaItem es una línea de factura.
type FacturaItem struct {
	ID             string
	FacturaID      string
	ProductoID     string
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Descuento      decimal.Decimal
	Subtotal       decimal.Decimal
}
