package repository

import "github.com/gestium/gestium-api/internal/domain/entity"

// ClienteRepository define el puerto de persistencia para Cliente.
type ClienteRepository interface {
	Create(cliente *entity.Cliente) error
	GetByID(id string) (*entity.Cliente, error)
	GetByEmpresaAndDocumento(empresaID, documento string) (*entity.Cliente, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Cliente, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(cliente *entity.Cliente) error
	Delete(id string) error
}
