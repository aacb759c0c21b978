package repository

import "github.com/gestium/gestium-api/internal/domain/entity"

// ArchivoRepository define el puerto de persistencia para Archivo y sus versiones.
type ArchivoRepository interface {
	Create(a *entity.Archivo) error
	GetByID(id string) (*entity.Archivo, error)
	ListByEmpresa(empresaID string, soloActivos bool, limit, offset int) ([]*entity.Archivo, error)
	CountByEmpresa(empresaID string, soloActivos bool) (int, error)
	Update(a *entity.Archivo) error
	IncrementarDescargas(id string) error

	CreateVersion(v *entity.ArchivoVersion) error
	ListVersiones(archivoID string) ([]*entity.ArchivoVersion, error)
	UltimaVersion(archivoID string) (int, error)
}
