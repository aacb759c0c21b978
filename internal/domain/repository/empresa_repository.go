package repository

import "github.com/gestium/gestium-api/internal/domain/entity"

// EmpresaRepository define el puerto de persistencia para Empresa (DIP).
// La implementación vive en infrastructure.
type EmpresaRepository interface {
	Create(empresa *entity.Empresa) error
	GetByID(id string) (*entity.Empresa, error)
	GetByRUC(ruc string) (*entity.Empresa, error)
	Update(empresa *entity.Empresa) error
	List(limit, offset int) ([]*entity.Empresa, error)
	Count() (int, error)
	Delete(id string) error

	// Configuración regional/tributaria (una fila por empresa).
	GetConfig(empresaID string) (*entity.EmpresaConfig, error)
	SaveConfig(cfg *entity.EmpresaConfig) error
}
