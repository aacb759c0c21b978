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

// CotizacionUseCase casos de uso de cotizaciones.
type CotizacionUseCase struct {
	txRunner       VentasTxRunner
	cotizacionRepo repository.CotizacionRepository
	clienteRepo    repository.ClienteRepository
}

// NewCotizacionUseCase construye el caso de uso.
func NewCotizacionUseCase(
	txRunner VentasTxRunner,
	cotizacionRepo repository.CotizacionRepository,
	clienteRepo repository.ClienteRepository,
) *CotizacionUseCase {
	return &CotizacionUseCase{txRunner: txRunner, cotizacionRepo: cotizacionRepo, clienteRepo: clienteRepo}
}

// Create crea una cotización con sus líneas en una sola transacción.
// El descuento de línea es porcentual; el IGV se calcula al 18%.
func (uc *CotizacionUseCase) Create(ctx context.Context, empresaID string, in dto.CreateCotizacionRequest) (*dto.CotizacionResponse, error) {
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
		if !item.Cantidad.GreaterThan(decimal.Zero) || item.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if item.DescuentoPorcentaje.LessThan(decimal.Zero) || item.DescuentoPorcentaje.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		lineas = append(lineas, Linea{
			Cantidad:            item.Cantidad,
			PrecioUnitario:      item.PrecioUnitario,
			DescuentoPorcentaje: item.DescuentoPorcentaje,
		})
	}
	totales := CalcularTotales(lineas, TasaIGVCotizacion)

	now := time.Now()
	cot := &entity.Cotizacion{
		ID:               uuid.New().String(),
		EmpresaID:        empresaID,
		ClienteID:        in.ClienteID,
		Numero:           fmt.Sprintf("COT-%d", now.Unix()),
		Fecha:            now,
		FechaVencimiento: in.FechaVencimiento,
		Estado:           entity.EstadoPendiente,
		Subtotal:         totales.Subtotal,
		Descuento:        totales.Descuento,
		IGV:              totales.IGV,
		Total:            totales.Total,
		Observaciones:    in.Observaciones,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	items := make([]*entity.CotizacionItem, 0, len(in.Items))
	for _, it := range in.Items {
		items = append(items, &entity.CotizacionItem{
			ID:                  uuid.New().String(),
			CotizacionID:        cot.ID,
			ProductoID:          it.ProductoID,
			Descripcion:         it.Descripcion,
			Cantidad:            it.Cantidad,
			PrecioUnitario:      it.PrecioUnitario,
			DescuentoPorcentaje: it.DescuentoPorcentaje,
			Subtotal:            it.Cantidad.Mul(it.PrecioUnitario).Round(2),
		})
	}

	err = uc.txRunner.RunVentas(ctx, func(
		cotRepo repository.CotizacionRepository,
		_ repository.OrdenVentaRepository,
		_ repository.FacturaRepository,
		_ repository.NotaRepository,
	) error {
		if err := cotRepo.Create(cot); err != nil {
			return err
		}
		for _, item := range items {
			if err := cotRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, items), nil
}

// GetByID obtiene una cotización con sus líneas (verifica empresa).
func (uc *CotizacionUseCase) GetByID(empresaID, id string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	items, err := uc.cotizacionRepo.GetItems(id)
	if err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, items), nil
}

// List lista cotizaciones de la empresa con paginación.
func (uc *CotizacionUseCase) List(empresaID string, page dto.PageRequest) (*dto.CotizacionListResponse, error) {
	page.Normalize()
	list, err := uc.cotizacionRepo.ListByEmpresa(empresaID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.cotizacionRepo.CountByEmpresa(empresaID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CotizacionResponse, 0, len(list))
	for _, c := range list {
		data = append(data, *toCotizacionResponse(c, nil))
	}
	return &dto.CotizacionListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// Aprobar pasa la cotización de PENDIENTE a APROBADA.
func (uc *CotizacionUseCase) Aprobar(empresaID, id string) (*dto.CotizacionResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoAprobada, []string{entity.EstadoPendiente})
}

// Anular anula una cotización no terminal.
func (uc *CotizacionUseCase) Anular(empresaID, id string) (*dto.CotizacionResponse, error) {
	return uc.transicionar(empresaID, id, entity.EstadoAnulada, []string{entity.EstadoPendiente, entity.EstadoAprobada})
}

func (uc *CotizacionUseCase) transicionar(empresaID, id, destino string, desde []string) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(cot.Estado) {
		return nil, domain.ErrDocumentoInmutable
	}
	permitido := false
	for _, e := range desde {
		if cot.Estado == e {
			permitido = true
			break
		}
	}
	if !permitido {
		return nil, domain.ErrEstadoInvalido
	}
	cot.Estado = destino
	cot.UpdatedAt = time.Now()
	if err := uc.cotizacionRepo.Update(cot); err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, nil), nil
}

// Update reemplaza las líneas y recalcula totales. Solo cotizaciones
// PENDIENTES son editables; los estados terminales devuelven error de
// inmutabilidad.
func (uc *CotizacionUseCase) Update(ctx context.Context, empresaID, id string, in dto.CreateCotizacionRequest) (*dto.CotizacionResponse, error) {
	cot, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if cot == nil || cot.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(cot.Estado) {
		return nil, domain.ErrDocumentoInmutable
	}
	if cot.Estado != entity.EstadoPendiente {
		return nil, domain.ErrEstadoInvalido
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	lineas := make([]Linea, 0, len(in.Items))
	items := make([]*entity.CotizacionItem, 0, len(in.Items))
	for _, it := range in.Items {
		if !it.Cantidad.GreaterThan(decimal.Zero) || it.PrecioUnitario.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		if it.DescuentoPorcentaje.LessThan(decimal.Zero) || it.DescuentoPorcentaje.GreaterThan(decimal.NewFromInt(100)) {
			return nil, domain.ErrInvalidInput
		}
		lineas = append(lineas, Linea{
			Cantidad:            it.Cantidad,
			PrecioUnitario:      it.PrecioUnitario,
			DescuentoPorcentaje: it.DescuentoPorcentaje,
		})
		items = append(items, &entity.CotizacionItem{
			ID:                  uuid.New().String(),
			CotizacionID:        cot.ID,
			ProductoID:          it.ProductoID,
			Descripcion:         it.Descripcion,
			Cantidad:            it.Cantidad,
			PrecioUnitario:      it.PrecioUnitario,
			DescuentoPorcentaje: it.DescuentoPorcentaje,
			Subtotal:            it.Cantidad.Mul(it.PrecioUnitario).Round(2),
		})
	}
	totales := CalcularTotales(lineas, TasaIGVCotizacion)
	cot.Subtotal = totales.Subtotal
	cot.Descuento = totales.Descuento
	cot.IGV = totales.IGV
	cot.Total = totales.Total
	if in.FechaVencimiento != nil {
		cot.FechaVencimiento = in.FechaVencimiento
	}
	if in.Observaciones != "" {
		cot.Observaciones = in.Observaciones
	}
	cot.UpdatedAt = time.Now()

	err = uc.txRunner.RunVentas(ctx, func(
		cotRepo repository.CotizacionRepository,
		_ repository.OrdenVentaRepository,
		_ repository.FacturaRepository,
		_ repository.NotaRepository,
	) error {
		if err := cotRepo.DeleteItems(cot.ID); err != nil {
			return err
		}
		for _, item := range items {
			if err := cotRepo.CreateItem(item); err != nil {
				return err
			}
		}
		return cotRepo.Update(cot)
	})
	if err != nil {
		return nil, err
	}
	return toCotizacionResponse(cot, items), nil
}

// Delete elimina una cotización no terminal con sus líneas.
func (uc *CotizacionUseCase) Delete(ctx context.Context, empresaID, id string) error {
	cot, err := uc.cotizacionRepo.GetByID(id)
	if err != nil {
		return err
	}
	if cot == nil || cot.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	if entity.EsEstadoTerminal(cot.Estado) {
		return domain.ErrDocumentoInmutable
	}
	return uc.txRunner.RunVentas(ctx, func(
		cotRepo repository.CotizacionRepository,
		_ repository.OrdenVentaRepository,
		_ repository.FacturaRepository,
		_ repository.NotaRepository,
	) error {
		if err := cotRepo.DeleteItems(id); err != nil {
			return err
		}
		return cotRepo.Delete(id)
	})
}

func toCotizacionResponse(c *entity.Cotizacion, items []*entity.CotizacionItem) *dto.CotizacionResponse {
	resp := &dto.CotizacionResponse{
		ID:               c.ID,
		EmpresaID:        c.EmpresaID,
		ClienteID:        c.ClienteID,
		Numero:           c.Numero,
		Fecha:            c.Fecha,
		FechaVencimiento: c.FechaVencimiento,
		Estado:           c.Estado,
		Subtotal:         c.Subtotal,
		Descuento:        c.Descuento,
		IGV:              c.IGV,
		Total:            c.Total,
		Observaciones:    c.Observaciones,
		OrdenVentaID:     c.OrdenVentaID,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.CotizacionItemResponse{
			ID:                  it.ID,
			ProductoID:          it.ProductoID,
			Descripcion:         it.Descripcion,
			Cantidad:            it.Cantidad,
			PrecioUnitario:      it.PrecioUnitario,
			DescuentoPorcentaje: it.DescuentoPorcentaje,
			Subtotal:            it.Subtotal,
		})
	}
	return resp
}
