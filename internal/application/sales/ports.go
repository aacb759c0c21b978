package sales

import (
	"context"

	"github.com/gestium/gestium-api/internal/domain/repository"
)

// VentasTxRunner ejecuta un callback con los repos de venta atados a una
// transacción. La escritura de cabecera + líneas de cualquier etapa debe ser
// atómica: si el callback falla se revierte todo.
type VentasTxRunner interface {
	RunVentas(ctx context.Context, fn func(
		cotizacionRepo repository.CotizacionRepository,
		ordenRepo repository.OrdenVentaRepository,
		facturaRepo repository.FacturaRepository,
		notaRepo repository.NotaRepository,
	) error) error
}
