package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// ArchivoUseCase casos de uso del registro de archivos: metadatos, versiones
// monotónicas y baja lógica.
type ArchivoUseCase struct {
	repo repository.ArchivoRepository
}

// NewArchivoUseCase construye el caso de uso.
func NewArchivoUseCase(repo repository.ArchivoRepository) *ArchivoUseCase {
	return &ArchivoUseCase{repo: repo}
}

// Create registra los metadatos de un archivo y su versión inicial.
func (uc *ArchivoUseCase) Create(empresaID string, in dto.CreateArchivoRequest) (*dto.ArchivoResponse, error) {
	if in.Nombre == "" || in.MimeType == "" || in.Tamano <= 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	archivo := &entity.Archivo{
		ID:          uuid.New().String(),
		EmpresaID:   empresaID,
		Nombre:      in.Nombre,
		MimeType:    in.MimeType,
		Tamano:      in.Tamano,
		EntidadTipo: in.EntidadTipo,
		EntidadID:   in.EntidadID,
		Activo:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(archivo); err != nil {
		return nil, err
	}
	version := &entity.ArchivoVersion{
		ID:        uuid.New().String(),
		ArchivoID: archivo.ID,
		Numero:    1,
		Nombre:    in.Nombre,
		Tamano:    in.Tamano,
		CreatedAt: now,
	}
	if err := uc.repo.CreateVersion(version); err != nil {
		return nil, err
	}
	return toArchivoResponse(archivo), nil
}

// GetByID obtiene un archivo y cuenta el acceso como descarga de metadatos.
func (uc *ArchivoUseCase) GetByID(empresaID, id string) (*dto.ArchivoResponse, error) {
	archivo, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if archivo == nil || archivo.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if err := uc.repo.IncrementarDescargas(id); err != nil {
		return nil, err
	}
	archivo.Descargas++
	return toArchivoResponse(archivo), nil
}

// List lista archivos de la empresa. Por defecto solo los activos.
func (uc *ArchivoUseCase) List(empresaID string, incluirInactivos bool, page dto.PageRequest) (*dto.ArchivoListResponse, error) {
	page.Normalize()
	soloActivos := !incluirInactivos
	list, err := uc.repo.ListByEmpresa(empresaID, soloActivos, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByEmpresa(empresaID, soloActivos)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ArchivoResponse, 0, len(list))
	for _, a := range list {
		data = append(data, *toArchivoResponse(a))
	}
	return &dto.ArchivoListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// AddVersion agrega una versión con número monotónico. El historial está
// acotado a entity.MaxVersionesPorArchivo.
func (uc *ArchivoUseCase) AddVersion(empresaID, archivoID string, in dto.CreateVersionRequest) (*dto.VersionResponse, error) {
	if in.Nombre == "" || in.Tamano <= 0 {
		return nil, domain.ErrInvalidInput
	}
	archivo, err := uc.repo.GetByID(archivoID)
	if err != nil {
		return nil, err
	}
	if archivo == nil || archivo.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	if !archivo.Activo {
		return nil, domain.ErrConflict
	}
	ultima, err := uc.repo.UltimaVersion(archivoID)
	if err != nil {
		return nil, err
	}
	if ultima >= entity.MaxVersionesPorArchivo {
		return nil, domain.ErrLimiteVersiones
	}
	now := time.Now()
	version := &entity.ArchivoVersion{
		ID:        uuid.New().String(),
		ArchivoID: archivoID,
		Numero:    ultima + 1,
		Nombre:    in.Nombre,
		Tamano:    in.Tamano,
		CreatedAt: now,
	}
	if err := uc.repo.CreateVersion(version); err != nil {
		return nil, err
	}
	archivo.Nombre = in.Nombre
	archivo.Tamano = in.Tamano
	archivo.UpdatedAt = now
	if err := uc.repo.Update(archivo); err != nil {
		return nil, err
	}
	return toVersionResponse(version), nil
}

// ListVersiones devuelve el historial de versiones del archivo.
func (uc *ArchivoUseCase) ListVersiones(empresaID, archivoID string) ([]dto.VersionResponse, error) {
	archivo, err := uc.repo.GetByID(archivoID)
	if err != nil {
		return nil, err
	}
	if archivo == nil || archivo.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListVersiones(archivoID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VersionResponse, 0, len(list))
	for _, v := range list {
		out = append(out, *toVersionResponse(v))
	}
	return out, nil
}

// Delete da de baja lógica el archivo (Activo = false); la fila permanece.
func (uc *ArchivoUseCase) Delete(empresaID, id string) error {
	archivo, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if archivo == nil || archivo.EmpresaID != empresaID {
		return domain.ErrNotFound
	}
	if !archivo.Activo {
		return nil // ya inactivo, idempotente
	}
	archivo.Activo = false
	archivo.UpdatedAt = time.Now()
	return uc.repo.Update(archivo)
}

func toArchivoResponse(a *entity.Archivo) *dto.ArchivoResponse {
	return &dto.ArchivoResponse{
		ID:          a.ID,
		EmpresaID:   a.EmpresaID,
		Nombre:      a.Nombre,
		MimeType:    a.MimeType,
		Tamano:      a.Tamano,
		EntidadTipo: a.EntidadTipo,
		EntidadID:   a.EntidadID,
		Activo:      a.Activo,
		Descargas:   a.Descargas,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toVersionResponse(v *entity.ArchivoVersion) *dto.VersionResponse {
	return &dto.VersionResponse{
		ID:        v.ID,
		ArchivoID: v.ArchivoID,
		Numero:    v.Numero,
		Nombre:    v.Nombre,
		Tamano:    v.Tamano,
		CreatedAt: v.CreatedAt,
	}
}
