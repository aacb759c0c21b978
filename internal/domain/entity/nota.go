package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de nota contable asociada a una factura.
const (
	NotaCredito = "CREDITO"
	NotaDebito  = "DEBITO"
)

// Nota representa una nota de crédito o débito emitida contra una factura.
// Es un documento independiente con sus propias líneas y totales.
type Nota struct {
	ID        string
	EmpresaID string
	ClienteID string
	FacturaID string
	Tipo      string // NotaCredito | NotaDebito
	Numero    string
	Fecha     time.Time
	Motivo    string
	Estado    string
	Subtotal  decimal.Decimal
	Descuento decimal.Decimal
	IGV       decimal.Decimal
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NotaItem es una línea de nota de crédito/débito.
type NotaItem struct {
	ID             string
	NotaID         string
	ProductoID     string
	Descripcion    string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	Descuento      decimal.Decimal
	Subtotal       decimal.Decimal
}
