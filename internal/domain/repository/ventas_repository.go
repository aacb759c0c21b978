package repository

import "github.com/gestium/gestium-api/internal/domain/entity"

// CotizacionRepository define el puerto de persistencia para Cotizacion.
type CotizacionRepository interface {
	Create(c *entity.Cotizacion) error
	CreateItem(item *entity.CotizacionItem) error
	GetByID(id string) (*entity.Cotizacion, error)
	GetItems(cotizacionID string) ([]*entity.CotizacionItem, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cotizacion, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(c *entity.Cotizacion) error
	DeleteItems(cotizacionID string) error
	Delete(id string) error
}

// OrdenVentaRepository define el puerto de persistencia para OrdenVenta.
type OrdenVentaRepository interface {
	Create(o *entity.OrdenVenta) error
	CreateItem(item *entity.OrdenVentaItem) error
	GetByID(id string) (*entity.OrdenVenta, error)
	GetItems(ordenID string) ([]*entity.OrdenVentaItem, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.OrdenVenta, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(o *entity.OrdenVenta) error
	DeleteItems(ordenID string) error
	Delete(id string) error
}

// FacturaRepository define el puerto de persistencia para Factura.
type FacturaRepository interface {
	Create(f *entity.Factura) error
	CreateItem(item *entity.FacturaItem) error
	GetByID(id string) (*entity.Factura, error)
	GetItems(facturaID string) ([]*entity.FacturaItem, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Factura, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(f *entity.Factura) error
}

// NotaRepository define el puerto de persistencia para notas de crédito/débito.
type NotaRepository interface {
	Create(n *entity.Nota) error
	CreateItem(item *entity.NotaItem) error
	GetByID(id string) (*entity.Nota, error)
	GetItems(notaID string) ([]*entity.NotaItem, error)
	ListByFactura(facturaID string) ([]*entity.Nota, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Nota, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(n *entity.Nota) error
}
