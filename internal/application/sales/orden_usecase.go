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

// OrdenUseCase casos de uso de órdenes de venta.
type OrdenUseCase struct {
	txRunner       VentasTxRunner
	ordenRepo      repository.OrdenVentaRepository
	cotizacionRepo repository.CotizacionRepository
	clienteRepo    repository.ClienteRepository
}

// NewOrdenUseCase construye el caso de uso.
func NewOrdenUseCase(
	txRunner VentasTxRunner,
	ordenRepo repository.OrdenVentaRepository,
	cotizacionRepo repository.CotizacionRepository,
	clienteRepo repository.ClienteRepository,
) *OrdenUseCase {
	return &OrdenUseCase{
		txRunner:       txRunner,
		ordenRepo:      ordenRepo,
		cotizacionRepo: cotizacionRepo,
		clienteRepo:    clienteRepo,
	}
}

// Create crea una orden directa (sin cotización de origen). El descuento de
// línea es un monto fijo; el IGV se calcula al 19%.
func (uc *OrdenUseCase) Create(ctx context.Context, empresaID string, in dto.CreateOrdenRequest) (*dto.OrdenResponse, error) {
	if in.ClienteID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	cliente, err := uc.clienteRepo.GetByID(in.ClienteID)
	if err != nil || cliente == nil {
		return nil, domain.ErrNotFound
	}
	if cliente.EmpresaID != empresaID {
		return nil, domain.ErrForbidden
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
	totales := CalcularTotales(lineas, TasaIGVOrden)

	now := time.Now()
	orden := &entity.OrdenVenta{
		ID:            uuid.New().String(),
		EmpresaID:     empresaID,
		ClienteID:     in.ClienteID,
		Numero:        fmt.Sprintf("OV-%d", now.Unix()),
		Fecha:         now,
		FechaEntrega:  in.FechaEntrega,
		Estado:        entity.EstadoPendiente,
		Subtotal:      totales.Subtotal,
		Descuento:     totales.Descuento,
		IGV:           totales.IGV,
		Total:         totales.Total,
		Observaciones: in.Observaciones,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := make([]*entity.OrdenVentaItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.OrdenVentaItem{
			ID:             uuid.New().String(),
			OrdenVentaID:   orden.ID,
			ProductoID:     it.ProductoID,
			Descripcion:    it.Descripcion,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Descuento:      it.Descuento,
			Subtotal:       it.Cantidad.Mul(it.PrecioUnitario).Round(2),
		})
	}

	err = uc.persistirOrden(ctx, orden, items, nil)
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, items), nil
}

// CreateFromCotizacion genera una orden a partir de una cotización APROBADA.
// Copia las líneas convirtiendo el descuento porcentual a monto fijo y
// recalcula los totales con la tasa de la etapa.
func (uc *OrdenUseCase) CreateFromCotizacion(ctx context.Context, empresaID, cotizacionID string) (*dto.OrdenResponse, error) {
	cot, err := uc.cotizacionRepo.GetByID(cotizacionID)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if cot.Estado != entity.EstadoAprobada {
		return nil, domain.ErrEstadoInvalido
	}
	if cot.OrdenVentaID != nil {
		return nil, domain.ErrConflict
	}
	cotItems, err := uc.cotizacionRepo.GetItems(cotizacionID)
	if err != nil {
		return nil, err
	}
	if len(cotItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	orden := &entity.OrdenVenta{
		ID:           uuid.New().String(),
		EmpresaID:    empresaID,
		ClienteID:    cot.ClienteID,
		CotizacionID: &cot.ID,
		Numero:       fmt.Sprintf("OV-%d", now.Unix()),
		Fecha:        now,
		Estado:       entity.EstadoPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	lineas := make([]Linea, 0, len(cotItems))
	items := make([]*entity.OrdenVentaItem, 0, len(cotItems))
	for _, ci := range cotItems {
		linea := Linea{
			Cantidad:            ci.Cantidad,
			PrecioUnitario:      ci.PrecioUnitario,
			DescuentoPorcentaje: ci.DescuentoPorcentaje,
		}
		// el descuento porcentual de la cotización se congela como monto fijo
		montoDescuento := linea.DescuentoLinea().Round(2)
		lineas = append(lineas, Linea{
			Cantidad:       ci.Cantidad,
			PrecioUnitario: ci.PrecioUnitario,
			DescuentoMonto: montoDescuento,
		})
		items = append(items, &entity.OrdenVentaItem{
			ID:             uuid.New().String(),
			OrdenVentaID:   orden.ID,
			ProductoID:     ci.ProductoID,
			Descripcion:    ci.Descripcion,
			Cantidad:       ci.Cantidad,
			PrecioUnitario: ci.PrecioUnitario,
			Descuento:      montoDescuento,
			Subtotal:       ci.Cantidad.Mul(ci.PrecioUnitario).Round(2),
		})
	}
	totales := CalcularTotales(lineas, TasaIGVOrden)
	orden.Subtotal = totales.Subtotal
	orden.Descuento = totales.Descuento
	orden.IGV = totales.IGV
	orden.Total = totales.Total

	cot.OrdenVentaID = &orden.ID
	cot.UpdatedAt = now
	if err := uc.persistirOrden(ctx, orden, items, cot); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, items), nil
}

// persistirOrden guarda cabecera + líneas (y la cotización de origen si aplica)
// en una sola transacción.
func (uc *OrdenUseCase) persistirOrden(ctx context.Context, orden *entity.OrdenVenta, items []*entity.OrdenVentaItem, cot *entity.Cotizacion) error {
	return uc.txRunner.RunVentas(ctx, func(
		cotRepo repository.CotizacionRepository,
		ordenRepo repository.OrdenVentaRepository,
		_ repository.FacturaRepository,
		_ repository.NotaRepository,
	) error {
		if err := ordenRepo.Create(orden); err != nil {
			return err
		}
		for _, item := range items {
			if err := ordenRepo.CreateItem(item); err != nil {
				return err
			}
		}
		if cot != nil {
			return cotRepo.Update(cot)
		}
		return nil
	})
}

// GetByID obtiene una orden con sus líneas (verifica empresa).
func (uc *OrdenUseCase) GetByID(empresaID, id string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil || orden.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.ordenRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, items), nil
}

// List lista órdenes de la empresa con paginación.
func (uc *OrdenUseCase) List(empresaID string, page dto.PageRequest) (*dto.OrdenListResponse, error) {
	page.Normalize()
	list, err := uc.ordenRepo.ListByEmpresa(empresaID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.ordenRepo.CountByEmpresa(empresaID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.OrdenResponse, 0, len(list))
	for _, o := range list {
		data = append(data, *toOrdenResponse(o, nil))
	}
	return &dto.OrdenListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// Aprobar pasa la orden de PENDIENTE a APROBADA.
func (uc *OrdenUseCase) Aprobar(empresaID, id string) (*dto.OrdenResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoAprobada, []string{entity.EstadoPendiente})
}

// Anular anula una orden no terminal. Una orden FACTURADA está congelada.
func (uc *OrdenUseCase) Anular(empresaID, id string) (*dto.OrdenResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoAnulada, []string{entity.EstadoPendiente, entity.EstadoAprobada})
}

func (uc *OrdenUseCase) transicionar(empresaID, id, destino string, desde []string) (*dto.OrdenResponse, error) {
	orden, err := uc.ordenRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if orden == nil || orden.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(orden.Estado) {
		return nil, domain.ErrDocumentoInmutable
	}
	permitido := false
	for _, e := range desde {
		if orden.Estado == e {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, domain.ErrEstadoInvalido
	}
	orden.Estado = destino
	orden.UpdatedAt = time.Now()
	if err := uc.ordenRepo.Update(orden); err != nil {
		return nil, err
	}
	return toOrdenResponse(orden, nil), nil
}

// Facturar genera la factura de una orden APROBADA: copia las líneas,
// recalcula los totales con la tasa de factura (18%) y congela la orden en
// FACTURADA. Todo en una transacción.
func (uc *OrdenUseCase) Facturar(ctx context.Context, empresaID, ordenID, serie string) (*dto.FacturaResponse, error) {
	orden, err := uc.ordenRepo.GetByID(ordenID)
	if err != nil {
		return nil, err
	}
	if orden == nil || orden.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(orden.Estado) {
		return nil, domain.ErrDocumentoInmutable
	}
	if orden.Estado != entity.EstadoAprobada {
		return nil, domain.ErrEstadoInvalido
	}
	ordenItems, err := uc.ordenRepo.GetItems(ordenID)
	if err != nil {
		return nil, err
	}
	if len(ordenItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if serie == "" {
		serie = "F001"
	}

	now := time.Now()
	factura := &entity.Factura{
		ID:           uuid.New().String(),
		EmpresaID:    empresaID,
		ClienteID:    orden.ClienteID,
		OrdenVentaID: &orden.ID,
		Serie:        serie,
		Numero:       fmt.Sprintf("%d", now.Unix()),
		Fecha:        now,
		Estado:       entity.EstadoPendiente,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	lineas := make([]Linea, 0, len(ordenItems))
	items := make([]*entity.FacturaItem, 0, len(ordenItems))
	for _, oi := range ordenItems {
		lineas = append(lineas, Linea{
			Cantidad:       oi.Cantidad,
			PrecioUnitario: oi.PrecioUnitario,
			DescuentoMonto: oi.Descuento,
		})
		items = append(items, &entity.FacturaItem{
			ID:             uuid.New().String(),
			FacturaID:      factura.ID,
			ProductoID:     oi.ProductoID,
			Descripcion:    oi.Descripcion,
			Cantidad:       oi.Cantidad,
			PrecioUnitario: oi.PrecioUnitario,
			Descuento:      oi.Descuento,
			Subtotal:       oi.Subtotal,
		})
	}
	totales := CalcularTotales(lineas, TasaIGVFactura)
	factura.Subtotal = totales.Subtotal
	factura.Descuento = totales.Descuento
	factura.IGV = totales.IGV
	factura.Total = totales.Total

	orden.Estado = entity.EstadoFacturada
	orden.FacturaID = &factura.ID
	orden.UpdatedAt = now

	err = uc.txRunner.RunVentas(ctx, func(
		_ repository.CotizacionRepository,
		ordenRepo repository.OrdenVentaRepository,
		facturaRepo repository.FacturaRepository,
		_ repository.NotaRepository,
	) error {
		if err := facturaRepo.Create(factura); err != nil {
			return err
		}
		for _, item := range items {
			if err := facturaRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return ordenRepo.Update(orden)
	})
	if err != nil {
		return nil, err
	}
	return toFacturaResponse(factura, items), nil
}

func toOrdenResponse(o *entity.OrdenVenta, items []*entity.OrdenVentaItem) *dto.OrdenResponse {
	resp := &dto.OrdenResponse{
		ID:            o.ID,
		EmpresaID:     o.EmpresaID,
		ClienteID:     o.ClienteID,
		CotizacionID:  o.CotizacionID,
		Numero:        o.Numero,
		Fecha:         o.Fecha,
		FechaEntrega:  o.FechaEntrega,
		Estado:        o.Estado,
		Subtotal:      o.Subtotal,
		Descuento:     o.Descuento,
		IGV:           o.IGV,
		Total:         o.Total,
		Observaciones: o.Observaciones,
		FacturaID:     o.FacturaID,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrdenItemResponse{
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
