package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/sales"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria del pipeline completo
// ──────────────────────────────────────────────────────────────────────────────

type memCotizacionRepo struct {
	docs  map[string]*entity.Cotizacion
	items map[string][]*entity.CotizacionItem
}

func (m *memCotizacionRepo) Create(c *entity.Cotizacion) error { m.docs[c.ID] = c; return nil }
func (m *memCotizacionRepo) CreateItem(i *entity.CotizacionItem) error {
	m.items[i.CotizacionID] = append(m.items[i.CotizacionID], i)
	return nil
}
func (m *memCotizacionRepo) GetByID(id string) (*entity.Cotizacion, error) { return m.docs[id], nil }
func (m *memCotizacionRepo) GetItems(id string) ([]*entity.CotizacionItem, error) {
	return m.items[id], nil
}
func (m *memCotizacionRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cotizacion, error) {
	var out []*entity.Cotizacion
	for _, c := range m.docs {
		if c.EmpresaID == empresaID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (m *memCotizacionRepo) CountByEmpresa(empresaID string) (int, error) {
	list, _ := m.ListByEmpresa(empresaID, 0, 0)
	return len(list), nil
}
func (m *memCotizacionRepo) Update(c *entity.Cotizacion) error { m.docs[c.ID] = c; return nil }
func (m *memCotizacionRepo) DeleteItems(id string) error       { delete(m.items, id); return nil }
func (m *memCotizacionRepo) Delete(id string) error            { delete(m.docs, id); return nil }

type memOrdenRepo struct {
	docs  map[string]*entity.OrdenVenta
	items map[string][]*entity.OrdenVentaItem
}

func (m *memOrdenRepo) Create(o *entity.OrdenVenta) error { m.docs[o.ID] = o; return nil }
func (m *memOrdenRepo) CreateItem(i *entity.OrdenVentaItem) error {
	m.items[i.OrdenVentaID] = append(m.items[i.OrdenVentaID], i)
	return nil
}
func (m *memOrdenRepo) GetByID(id string) (*entity.OrdenVenta, error) { return m.docs[id], nil }
func (m *memOrdenRepo) GetItems(id string) ([]*entity.OrdenVentaItem, error) {
	return m.items[id], nil
}
func (m *memOrdenRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.OrdenVenta, error) {
	var out []*entity.OrdenVenta
	for _, o := range m.docs {
		if o.EmpresaID == empresaID {
			out = append(out, o)
		}
	}
	return out, nil
}
func (m *memOrdenRepo) CountByEmpresa(empresaID string) (int, error) {
	list, _ := m.ListByEmpresa(empresaID, 0, 0)
	return len(list), nil
}
func (m *memOrdenRepo) Update(o *entity.OrdenVenta) error { m.docs[o.ID] = o; return nil }
func (m *memOrdenRepo) DeleteItems(id string) error       { delete(m.items, id); return nil }
func (m *memOrdenRepo) Delete(id string) error            { delete(m.docs, id); return nil }

type memFacturaRepo struct {
	docs  map[string]*entity.Factura
	items map[string][]*entity.FacturaItem
}

func (m *memFacturaRepo) Create(f *entity.Factura) error { m.docs[f.ID] = f; return nil }
func (m *memFacturaRepo) CreateItem(i *entity.FacturaItem) error {
	m.items[i.FacturaID] = append(m.items[i.FacturaID], i)
	return nil
}
func (m *memFacturaRepo) GetByID(id string) (*entity.Factura, error) { return m.docs[id], nil }
func (m *memFacturaRepo) GetItems(id string) ([]*entity.FacturaItem, error) {
	return m.items[id], nil
}
func (m *memFacturaRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Factura, error) {
	var out []*entity.Factura
	for _, f := range m.docs {
		if f.EmpresaID == empresaID {
			out = append(out, f)
		}
	}
	return out, nil
}
func (m *memFacturaRepo) CountByEmpresa(empresaID string) (int, error) {
	list, _ := m.ListByEmpresa(empresaID, 0, 0)
	return len(list), nil
}
func (m *memFacturaRepo) Update(f *entity.Factura) error { m.docs[f.ID] = f; return nil }

type memNotaRepo struct {
	docs  map[string]*entity.Nota
	items map[string][]*entity.NotaItem
}

func (m *memNotaRepo) Create(n *entity.Nota) error { m.docs[n.ID] = n; return nil }
func (m *memNotaRepo) CreateItem(i *entity.NotaItem) error {
	m.items[i.NotaID] = append(m.items[i.NotaID], i)
	return nil
}
func (m *memNotaRepo) GetByID(id string) (*entity.Nota, error) { return m.docs[id], nil }
func (m *memNotaRepo) GetItems(id string) ([]*entity.NotaItem, error) {
	return m.items[id], nil
}
func (m *memNotaRepo) ListByFactura(facturaID string) ([]*entity.Nota, error) {
	var out []*entity.Nota
	for _, n := range m.docs {
		if n.FacturaID == facturaID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (m *memNotaRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Nota, error) {
	var out []*entity.Nota
	for _, n := range m.docs {
		if n.EmpresaID == empresaID {
			out = append(out, n)
		}
	}
	return out, nil
}
func (m *memNotaRepo) CountByEmpresa(empresaID string) (int, error) {
	list, _ := m.ListByEmpresa(empresaID, 0, 0)
	return len(list), nil
}
func (m *memNotaRepo) Update(n *entity.Nota) error { m.docs[n.ID] = n; return nil }

type memClienteRepo struct {
	clientes map[string]*entity.Cliente
}

func (m *memClienteRepo) Create(c *entity.Cliente) error           { m.clientes[c.ID] = c; return nil }
func (m *memClienteRepo) GetByID(id string) (*entity.Cliente, error) { return m.clientes[id], nil }
func (m *memClienteRepo) GetByEmpresaAndDocumento(empresaID, documento string) (*entity.Cliente, error) {
	return nil, nil
}
func (m *memClienteRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cliente, error) {
	return nil, nil
}
func (m *memClienteRepo) CountByEmpresa(empresaID string) (int, error) { return 0, nil }
func (m *memClienteRepo) Update(c *entity.Cliente) error               { m.clientes[c.ID] = c; return nil }
func (m *memClienteRepo) Delete(id string) error                       { delete(m.clientes, id); return nil }

// memTxRunner ejecuta el callback sobre los mismos repos en memoria, sin
// transacción real.
type memTxRunner struct {
	cot     *memCotizacionRepo
	orden   *memOrdenRepo
	factura *memFacturaRepo
	nota    *memNotaRepo
}

func (m *memTxRunner) RunVentas(ctx context.Context, fn func(
	repository.CotizacionRepository,
	repository.OrdenVentaRepository,
	repository.FacturaRepository,
	repository.NotaRepository,
) error) error {
	return fn(m.cot, m.orden, m.factura, m.nota)
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	empresaVentas = "empresa-1"
	clienteVentas = "cliente-1"
)

type pipeline struct {
	cotizacionUC *sales.CotizacionUseCase
	ordenUC      *sales.OrdenUseCase
	facturaUC    *sales.FacturaUseCase
}

func newPipeline() pipeline {
	cot := &memCotizacionRepo{docs: map[string]*entity.Cotizacion{}, items: map[string][]*entity.CotizacionItem{}}
	orden := &memOrdenRepo{docs: map[string]*entity.OrdenVenta{}, items: map[string][]*entity.OrdenVentaItem{}}
	factura := &memFacturaRepo{docs: map[string]*entity.Factura{}, items: map[string][]*entity.FacturaItem{}}
	nota := &memNotaRepo{docs: map[string]*entity.Nota{}, items: map[string][]*entity.NotaItem{}}
	clientes := &memClienteRepo{clientes: map[string]*entity.Cliente{
		clienteVentas: {ID: clienteVentas, EmpresaID: empresaVentas, Nombre: "ACME SAC", Documento: "20100070970"},
	}}
	tx := &memTxRunner{cot: cot, orden: orden, factura: factura, nota: nota}
	return pipeline{
		cotizacionUC: sales.NewCotizacionUseCase(tx, cot, clientes),
		ordenUC:      sales.NewOrdenUseCase(tx, orden, cot, clientes),
		facturaUC:    sales.NewFacturaUseCase(tx, factura, nota),
	}
}

func crearCotizacion(t *testing.T, p pipeline) *dto.CotizacionResponse {
	t.Helper()
	cot, err := p.cotizacionUC.Create(context.Background(), empresaVentas, dto.CreateCotizacionRequest{
		ClienteID: clienteVentas,
		Items: []dto.CotizacionItemRequest{
			{Descripcion: "Servicio A", Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	return cot
}

func montoStr(t *testing.T, d decimal.Decimal, esperado string) {
	t.Helper()
	assert.True(t, d.Equal(decimal.RequireFromString(esperado)), "esperado %s, obtenido %s", esperado, d)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del pipeline cotización → orden → factura → nota
// ──────────────────────────────────────────────────────────────────────────────

func TestPipeline_CotizacionACobro(t *testing.T) {
	p := newPipeline()

	// cotización 2 × 50 al 18%
	cot := crearCotizacion(t, p)
	assert.Equal(t, entity.EstadoPendiente, cot.Estado)
	montoStr(t, cot.Subtotal, "100")
	montoStr(t, cot.IGV, "18")
	montoStr(t, cot.Total, "118")

	// aprobar y generar la orden: mismas líneas, tasa 19%
	_, err := p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	require.NoError(t, err)
	orden, err := p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	require.NoError(t, err)
	require.Len(t, orden.Items, 1)
	montoStr(t, orden.Subtotal, "100")
	montoStr(t, orden.IGV, "19")
	montoStr(t, orden.Total, "119")
	require.NotNil(t, orden.CotizacionID)
	assert.Equal(t, cot.ID, *orden.CotizacionID)

	// facturar la orden aprobada: vuelve al 18% y congela la orden
	_, err = p.ordenUC.Aprobar(empresaVentas, orden.ID)
	require.NoError(t, err)
	factura, err := p.ordenUC.Facturar(context.Background(), empresaVentas, orden.ID, "")
	require.NoError(t, err)
	assert.Equal(t, "F001", factura.Serie)
	montoStr(t, factura.IGV, "18")
	montoStr(t, factura.Total, "118")

	ordenCongelada, err := p.ordenUC.GetByID(empresaVentas, orden.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoFacturada, ordenCongelada.Estado)

	// pagar
	pagada, err := p.facturaUC.Pagar(empresaVentas, factura.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoPagada, pagada.Estado)
}

func TestPipeline_CotizacionPendienteNoGeneraOrden(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)

	_, err := p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

func TestPipeline_CotizacionNoGeneraDosOrdenes(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)
	_, err := p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	require.NoError(t, err)

	_, err = p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	require.NoError(t, err)
	_, err = p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestPipeline_EstadosTerminalesInmutables(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)
	_, err := p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	require.NoError(t, err)
	orden, err := p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	require.NoError(t, err)
	_, err = p.ordenUC.Aprobar(empresaVentas, orden.ID)
	require.NoError(t, err)
	factura, err := p.ordenUC.Facturar(context.Background(), empresaVentas, orden.ID, "F001")
	require.NoError(t, err)

	// la orden FACTURADA no admite más transiciones ni refacturación
	_, err = p.ordenUC.Anular(empresaVentas, orden.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentoInmutable)
	_, err = p.ordenUC.Facturar(context.Background(), empresaVentas, orden.ID, "F001")
	assert.ErrorIs(t, err, domain.ErrDocumentoInmutable)

	// la factura PAGADA queda congelada
	_, err = p.facturaUC.Pagar(empresaVentas, factura.ID)
	require.NoError(t, err)
	_, err = p.facturaUC.Anular(empresaVentas, factura.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentoInmutable)
}

func TestPipeline_CotizacionAnuladaInmutable(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)
	_, err := p.cotizacionUC.Anular(empresaVentas, cot.ID)
	require.NoError(t, err)

	_, err = p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentoInmutable)
	err = p.cotizacionUC.Delete(context.Background(), empresaVentas, cot.ID)
	assert.ErrorIs(t, err, domain.ErrDocumentoInmutable)
}

func TestPipeline_NotasContraFactura(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)
	_, err := p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	require.NoError(t, err)
	orden, err := p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	require.NoError(t, err)
	_, err = p.ordenUC.Aprobar(empresaVentas, orden.ID)
	require.NoError(t, err)
	factura, err := p.ordenUC.Facturar(context.Background(), empresaVentas, orden.ID, "F001")
	require.NoError(t, err)

	nota, err := p.facturaUC.CrearNota(context.Background(), empresaVentas, factura.ID, dto.CreateNotaRequest{
		Tipo:   entity.NotaCredito,
		Motivo: "devolución parcial",
		Items: []dto.NotaItemRequest{
			{Descripcion: "Servicio A", Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.NotaCredito, nota.Tipo)
	montoStr(t, nota.Subtotal, "50")
	montoStr(t, nota.IGV, "9")
	montoStr(t, nota.Total, "59")

	notas, err := p.facturaUC.ListNotas(empresaVentas, factura.ID)
	require.NoError(t, err)
	assert.Len(t, notas, 1)

	// tipo desconocido
	_, err = p.facturaUC.CrearNota(context.Background(), empresaVentas, factura.ID, dto.CreateNotaRequest{
		Tipo:  "REEMBOLSO",
		Items: []dto.NotaItemRequest{{Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipeline_NotaContraFacturaAnulada(t *testing.T) {
	p := newPipeline()
	cot := crearCotizacion(t, p)
	_, err := p.cotizacionUC.Aprobar(empresaVentas, cot.ID)
	require.NoError(t, err)
	orden, err := p.ordenUC.CreateFromCotizacion(context.Background(), empresaVentas, cot.ID)
	require.NoError(t, err)
	_, err = p.ordenUC.Aprobar(empresaVentas, orden.ID)
	require.NoError(t, err)
	factura, err := p.ordenUC.Facturar(context.Background(), empresaVentas, orden.ID, "F001")
	require.NoError(t, err)
	_, err = p.facturaUC.Anular(empresaVentas, factura.ID)
	require.NoError(t, err)

	_, err = p.facturaUC.CrearNota(context.Background(), empresaVentas, factura.ID, dto.CreateNotaRequest{
		Tipo:  entity.NotaCredito,
		Items: []dto.NotaItemRequest{{Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(10)}},
	})
	assert.ErrorIs(t, err, domain.ErrEstadoInvalido)
}

// Un descuento fuera de 0–100 volvería negativos el IGV y el total; tanto la
// creación como la modificación lo rechazan.
func TestCotizacion_DescuentoFueraDeRango(t *testing.T) {
	p := newPipeline()

	items := []dto.CotizacionItemRequest{
		{Cantidad: decimal.NewFromInt(2), PrecioUnitario: decimal.NewFromInt(50), DescuentoPorcentaje: decimal.NewFromInt(150)},
	}
	_, err := p.cotizacionUC.Create(context.Background(), empresaVentas, dto.CreateCotizacionRequest{
		ClienteID: clienteVentas, Items: items,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cot := crearCotizacion(t, p)
	_, err = p.cotizacionUC.Update(context.Background(), empresaVentas, cot.ID, dto.CreateCotizacionRequest{
		ClienteID: clienteVentas, Items: items,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// la cotización conserva sus montos originales
	intacta, err := p.cotizacionUC.GetByID(empresaVentas, cot.ID)
	require.NoError(t, err)
	montoStr(t, intacta.IGV, "18")
	montoStr(t, intacta.Total, "118")
}

func TestPipeline_ClienteDeOtraEmpresa(t *testing.T) {
	p := newPipeline()

	_, err := p.cotizacionUC.Create(context.Background(), "empresa-ajena", dto.CreateCotizacionRequest{
		ClienteID: clienteVentas,
		Items: []dto.CotizacionItemRequest{
			{Cantidad: decimal.NewFromInt(1), PrecioUnitario: decimal.NewFromInt(10)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
