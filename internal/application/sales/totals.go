// Package sales implementa la cadena de documentos de venta:
// cotización → orden de venta → factura → nota de crédito/débito.
// Cada etapa es una entidad independiente y recalcula sus totales.
package sales

import "github.com/shopspring/decimal"

// Tasas de IGV por etapa, como las aplica el negocio. La orden de venta usa
// una tasa distinta al resto de etapas; confirmar con negocio antes de
// unificarlas.
var (
	TasaIGVCotizacion = decimal.NewFromFloat(0.18)
	TasaIGVOrden      = decimal.NewFromFloat(0.19)
	TasaIGVFactura    = decimal.NewFromFloat(0.18)
	TasaIGVNota       = decimal.NewFromFloat(0.18)
)

var cien = decimal.NewFromInt(100)

// Linea es la entrada de cálculo de una línea de documento. El descuento es
// porcentual en cotizaciones y de monto fijo en el resto de etapas; solo uno
// de los dos campos aplica.
type Linea struct {
	Cantidad            decimal.Decimal
	PrecioUnitario      decimal.Decimal
	DescuentoPorcentaje decimal.Decimal // 0–100
	DescuentoMonto      decimal.Decimal
}

// SubtotalLinea devuelve cantidad × precio unitario.
func (l Linea) SubtotalLinea() decimal.Decimal {
	return l.Cantidad.Mul(l.PrecioUnitario)
}

// DescuentoLinea devuelve el descuento de la línea: porcentaje sobre el
// subtotal si está definido, si no el monto fijo.
func (l Linea) DescuentoLinea() decimal.Decimal {
	if l.DescuentoPorcentaje.GreaterThan(decimal.Zero) {
		return l.SubtotalLinea().Mul(l.DescuentoPorcentaje.Div(cien))
	}
	return l.DescuentoMonto
}

// Totales de un documento de venta. total = subtotal − descuento + igv, con
// igv = (subtotal − descuento) × tasa, redondeado a 2 decimales.
type Totales struct {
	Subtotal  decimal.Decimal
	Descuento decimal.Decimal
	IGV       decimal.Decimal
	Total     decimal.Decimal
}

// CalcularTotales recalcula los totales de un documento desde sus líneas.
func CalcularTotales(lineas []Linea, tasa decimal.Decimal) Totales {
	var subtotal, descuento decimal.Decimal
	for _, l := range lineas {
		subtotal = subtotal.Add(l.SubtotalLinea())
		descuento = descuento.Add(l.DescuentoLinea())
	}
	base := subtotal.Sub(descuento)
	igv := base.Mul(tasa).Round(2)
	return Totales{
		Subtotal:  subtotal.Round(2),
		Descuento: descuento.Round(2),
		IGV:       igv,
		Total:     subtotal.Round(2).Sub(descuento.Round(2)).Add(igv),
	}
}
