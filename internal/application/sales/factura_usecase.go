package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// FacturaUseCase casos de uso de facturas y de sus notas de crédito/débito.
type FacturaUseCase struct {
	txRunner    VentasTxRunner
	facturaRepo repository.FacturaRepository
	notaRepo    repository.NotaRepository
}

// NewFacturaUseCase construye el caso de uso.
func NewFacturaUseCase(
	txRunner VentasTxRunner,
	facturaRepo repository.FacturaRepository,
	notaRepo repository.NotaRepository,
) *FacturaUseCase {
	return &FacturaUseCase{txRunner: txRunner, facturaRepo: facturaRepo, notaRepo: notaRepo}
}

// GetByID obtiene una factura con sus líneas (verifica empresa).
func (uc *FacturaUseCase) GetByID(empresaID, id string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.facturaRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, items), nil
}

// List lista facturas de la empresa con paginación.
func (uc *FacturaUseCase) List(empresaID string, page dto.PageRequest) (*dto.FacturaListResponse, error) {
	page.Normalize()
	list, err := uc.facturaRepo.ListByEmpresa(empresaID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.facturaRepo.CountByEmpresa(empresaID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.FacturaResponse, 0, len(list))
	for _, f := range list {
		data = append(data, *toFacturaResponse(f, nil))
	}
	return &dto.FacturaListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// Pagar marca la factura como PAGADA (estado terminal).
func (uc *FacturaUseCase) Pagar(empresaID, id string) (*dto.FacturaResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoPagada)
}

// Anular anula la factura (estado terminal).
func (uc *FacturaUseCase) Anular(empresaID, id string) (*dto.FacturaResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoAnulada)
}

func (uc *FacturaUseCase) transicionar(empresaID, id, destino string) (*dto.FacturaResponse, error) {
	factura, err := uc.facturaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(factura.Estado) {
		return nil, domain.ErrDocumentoInmutable
	}
	factura.Estado = destino
	factura.UpdatedAt = time.Now()
	if err := uc.facturaRepo.Update(factura); err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, nil), nil
}

// CrearNota emite una nota de crédito o débito contra una factura. La nota es
// un documento independiente: recalcula sus propios totales (18%).
// No puede emitirse contra una factura anulada.
func (uc *FacturaUseCase) CrearNota(ctx context.Context, empresaID, facturaID string, in dto.CreateNotaRequest) (*dto.NotaResponse, error) {
	if in.Tipo != entity.NotaCredito && in.Tipo != entity.NotaDebito {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	factura, err := uc.facturaRepo.GetByID(facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if factura.Estado == entity.EstadoAnulada {
		return nil, domain.ErrEstadoInvalido
	}

	lineas := make([]Linea, 0, len(in.Items))
	for _, item := range in.Items {
		if !item.Cantidad.GreaterThan(decimal.Zero) || item.PrecioUnitario.LessThan(decimal.Zero) || item.Descuento.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		lineas = append(lineas, Linea{
			Cantidad:       item.Cantidad,
			PrecioUnitario: item.PrecioUnitario,
			DescuentoMonto: item.Descuento,
		})
	}
	totales := CalcularTotales(lineas, TasaIGVNota)

	prefijo := "NC"
	if in.Tipo == entity.NotaDebito {
		prefijo = "ND"
	}
	now := time.Now()
	nota := &entity.Nota{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,
		ClienteID: factura.ClienteID,
		FacturaID: factura.ID,
		Tipo:      in.Tipo,
		Numero:    fmt.Sprintf("%s-%d", prefijo, now.Unix()),
		Fecha:     now,
		Motivo:    in.Motivo,
		Estado:    entity.EstadoPendiente,
		Subtotal:  totales.Subtotal,
		Descuento: totales.Descuento,
		IGV:       totales.IGV,
		Total:     totales.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	items := make([]*entity.NotaItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.NotaItem{
			ID:             uuid.New().String(),
			NotaID:         nota.ID,
			ProductoID:     it.ProductoID,
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Descuento:      it.Descuento,
			Subtotal:       it.Cantidad.Mul(it.PrecioUnitario).Round(2),
		})
	}

	err = uc.txRunner.RunVentas(ctx, func(
		_ repository.CotizacionRepository,
		_ repository.OrdenVentaRepository,
		_ repository.FacturaRepository,
		notaRepo repository.NotaRepository,
	) error {
		if err := notaRepo.Create(nota); err != nil {
			return err
		}
		for _, item := range items {
			if err := notaRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toNotaResponse(nota), nil
}

// ListNotas lista las notas emitidas contra una factura.
func (uc *FacturaUseCase) ListNotas(empresaID, facturaID string) ([]dto.NotaResponse, error) {
	factura, err := uc.facturaRepo.GetByID(facturaID)
	if err != nil {
		return nil, err
	}
	if factura == nil || factura.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.notaRepo.ListByFactura(facturaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.NotaResponse, 0, len(list))
	for _, n := range list {
		out = append(out, *toNotaResponse(n))
	}
	return out, nil
}

func toFacturaResponse(f *entity.Factura, items []*entity.FacturaItem) *dto.FacturaResponse {
	resp := &dto.FacturaResponse{
		ID:           f.ID,
		EmpresaID:    f.EmpresaID,
		ClienteID:    f.ClienteID,
		OrdenVentaID: f.OrdenVentaID,
		Serie:        f.Serie,
		Numero:       f.Numero,
		Fecha:        f.Fecha,
		Estado:       f.Estado,
		Subtotal:     f.Subtotal,
		Descuento:    f.Descuento,
		IGV:          f.IGV,
		Total:        f.Total,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.FacturaItemResponse{
			ID:             it.ID,
			ProductoID:     it.ProductoID,
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Descuento:      it.Descuento,
			Subtotal:       it.Subtotal,
		})
	}
	return resp
}

func toNotaResponse(n *entity.Nota) *dto.NotaResponse {
	return &dto.NotaResponse{
		ID:        n.ID,
		EmpresaID: n.EmpresaID,
		ClienteID: n.ClienteID,
		FacturaID: n.FacturaID,
		Tipo:      n.Tipo,
		Numero:    n.Numero,
		Fecha:     n.Fecha,
		Motivo:    n.Motivo,
		Estado:    n.Estado,
		Subtotal:  n.Subtotal,
		Descuento: n.Descuento,
		IGV:       n.IGV,
		Total:     n.Total,
	}
}
