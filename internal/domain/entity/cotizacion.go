package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de los documentos de venta.
// FACTURADA, PAGADA y ANULADA son terminales: el documento queda congelado.
const (
	EstadoPendiente = "PENDIENTE"
	EstadoAprobada  = "APROBADA"
	EstadoAnulada   = "ANULADA"
	EstadoFacturada = "FACTURADA"
	EstadoPagada    = "PAGADA"
)

// EsEstadoTerminal informa si un estado congela el documento.
func EsEstadoTerminal(estado string) bool {
	switch estado {
	case EstadoFacturada, EstadoAnulada, EstadoPagada:
		return true
	}
	return false
}

// Cotizacion representa la cabecera de una cotización.
type Cotizacion struct {
	ID               string
	EmpresaID        string
	ClienteID        string
	Numero           string
	Fecha            time.Time
	FechaVencimiento *time.Time
	Estado           string
	Subtotal         decimal.Decimal
	Descuento        decimal.Decimal
	IGV              decimal.Decimal
	Total            decimal.Decimal
	Observaciones    string
	OrdenVentaID     *string // orden generada a partir de esta cotización
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CotizacionItem es una línea de cotización. El descuento es porcentual.
type CotizacionItem struct {
	ID                  string
	CotizacionID        string
	ProductoID          string
	Descripcion         string
	Cantidad            decimal.Decimal
	PrecioUnitario      decimal.Decimal
	DescuentoPorcentaje decimal.Decimal // 0–100
	Subtotal            decimal.Decimal // cantidad × precio, sin descuento
}
