package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Cotizaciones
// ──────────────────────────────────────────────────────────────────────────────

// CotizacionItemRequest línea de cotización (descuento porcentual 0–100).
type CotizacionItemRequest struct {
	ProductoID          string          `json:"productoId"`
	Descripcion         string          `json:"descripcion"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	PrecioUnitario      decimal.Decimal `json:"precioUnitario"`
	DescuentoPorcentaje decimal.Decimal `json:"descuentoPorcentaje"`
}

// CreateCotizacionRequest datos para crear una cotización.
type CreateCotizacionRequest struct {
	ClienteID        string                  `json:"clienteId"`
	FechaVencimiento *time.Time              `json:"fechaVencimiento"`
	Observaciones    string                  `json:"observaciones"`
	Items            []CotizacionItemRequest `json:"items"`
}

// CotizacionItemResponse línea de cotización en respuestas.
type CotizacionItemResponse struct {
	ID                  string          `json:"id"`
	ProductoID          string          `json:"productoId"`
	Descripcion         string          `json:"descripcion"`
	Cantidad            decimal.Decimal `json:"cantidad"`
	PrecioUnitario      decimal.Decimal `json:"precioUnitario"`
	DescuentoPorcentaje decimal.Decimal `json:"descuentoPorcentaje"`
	Subtotal            decimal.Decimal `json:"subtotal"`
}

// CotizacionResponse cabecera + líneas + totales.
type CotizacionResponse struct {
	ID               string                   `json:"id"`
	EmpresaID        string                   `json:"empresaId"`
	ClienteID        string                   `json:"clienteId"`
	Numero           string                   `json:"numero"`
	Fecha            time.Time                `json:"fecha"`
	FechaVencimiento *time.Time               `json:"fechaVencimiento,omitempty"`
	Estado           string                   `json:"estado"`
	Subtotal         decimal.Decimal          `json:"subtotal"`
	Descuento        decimal.Decimal          `json:"descuento"`
	IGV              decimal.Decimal          `json:"igv"`
	Total            decimal.Decimal          `json:"total"`
	Observaciones    string                   `json:"observaciones,omitempty"`
	OrdenVentaID     *string                  `json:"ordenVentaId,omitempty"`
	Items            []CotizacionItemResponse `json:"items,omitempty"`
}

// CotizacionListResponse listado paginado.
type CotizacionListResponse struct {
	Data []CotizacionResponse `json:"data"`
	Meta PageMeta             `json:"meta"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes de venta
// ──────────────────────────────────────────────────────────────────────────────

// OrdenItemRequest línea de orden (descuento de monto fijo).
type OrdenItemRequest struct {
	ProductoID     string          `json:"productoId"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// CreateOrdenRequest datos para crear una orden directa (sin cotización).
type CreateOrdenRequest struct {
	ClienteID     string             `json:"clienteId"`
	FechaEntrega  *time.Time         `json:"fechaEntrega"`
	Observaciones string             `json:"observaciones"`
	Items         []OrdenItemRequest `json:"items"`
}

// OrdenItemResponse línea de orden en respuestas.
type OrdenItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"productoId"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// OrdenResponse cabecera + líneas + totales.
type OrdenResponse struct {
	ID            string              `json:"id"`
	EmpresaID     string              `json:"empresaId"`
	ClienteID     string              `json:"clienteId"`
	CotizacionID  *string             `json:"cotizacionId,omitempty"`
	Numero        string              `json:"numero"`
	Fecha         time.Time           `json:"fecha"`
	FechaEntrega  *time.Time          `json:"fechaEntrega,omitempty"`
	Estado        string              `json:"estado"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Descuento     decimal.Decimal     `json:"descuento"`
	IGV           decimal.Decimal     `json:"igv"`
	Total         decimal.Decimal     `json:"total"`
	Observaciones string              `json:"observaciones,omitempty"`
	FacturaID     *string             `json:"facturaId,omitempty"`
	Items         []OrdenItemResponse `json:"items,omitempty"`
}

// OrdenListResponse listado paginado.
type OrdenListResponse struct {
	Data []OrdenResponse `json:"data"`
	Meta PageMeta        `json:"meta"`
}

// ──────────────────────────────────────────────────────────────────────────────
// Facturas y notas
// ──────────────────────────────────────────────────────────────────────────────

// FacturaItemResponse línea de factura.
type FacturaItemResponse struct {
	ID             string          `json:"id"`
	ProductoID     string          `json:"productoId"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Descuento      decimal.Decimal `json:"descuento"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// FacturaResponse cabecera + líneas + totales.
type FacturaResponse struct {
	ID           string                `json:"id"`
	EmpresaID    string                `json:"empresaId"`
	ClienteID    string                `json:"clienteId"`
	OrdenVentaID *string               `json:"ordenVentaId,omitempty"`
	Serie        string                `json:"serie"`
	Numero       string                `json:"numero"`
	Fecha        time.Time             `json:"fecha"`
	Estado       string                `json:"estado"`
	Subtotal     decimal.Decimal       `json:"subtotal"`
	Descuento    decimal.Decimal       `json:"descuento"`
	IGV          decimal.Decimal       `json:"igv"`
	Total        decimal.Decimal       `json:"total"`
	Items        []FacturaItemResponse `json:"items,omitempty"`
}

// FacturaListResponse listado paginado.
type FacturaListResponse struct {
	Data []FacturaResponse `json:"data"`
	Meta PageMeta          `json:"meta"`
}

// FacturarOrdenRequest parámetros opcionales al facturar una orden.
type FacturarOrdenRequest struct {
	Serie string `json:"serie"` // por defecto "F001"
}

// NotaItemRequest línea de nota de crédito/débito.
type NotaItemRequest struct {
	ProductoID     string          `json:"productoId"`
	Descripcion    string          `json:"descripcion"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Descuento      decimal.Decimal `json:"descuento"`
}

// CreateNotaRequest emite una nota contra una factura.
type CreateNotaRequest struct {
	Tipo   string            `json:"tipo"` // CREDITO | DEBITO
	Motivo string            `json:"motivo"`
	Items  []NotaItemRequest `json:"items"`
}

// NotaResponse cabecera + totales de una nota.
type NotaResponse struct {
	ID        string          `json:"id"`
	EmpresaID string          `json:"empresaId"`
	ClienteID string          `json:"clienteId"`
	FacturaID string          `json:"facturaId"`
	Tipo      string          `json:"tipo"`
	Numero    string          `json:"numero"`
	Fecha     time.Time       `json:"fecha"`
	Motivo    string          `json:"motivo,omitempty"`
	Estado    string          `json:"estado"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Descuento decimal.Decimal `json:"descuento"`
	IGV       decimal.Decimal `json:"igv"`
	Total     decimal.Decimal `json:"total"`
}
