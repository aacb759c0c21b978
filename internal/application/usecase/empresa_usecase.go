package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
	"github.com/gestium/gestium-api/pkg/ruc"
)

// EmpresaUseCase aplica reglas de negocio para empresas (casos de uso).
type EmpresaUseCase struct {
	repo repository.EmpresaRepository
}

// NewEmpresaUseCase construye el caso de uso con el puerto de persistencia.
func NewEmpresaUseCase(repo repository.EmpresaRepository) *EmpresaUseCase {
	return &EmpresaUseCase{repo: repo}
}

// Create registra una empresa nueva. Valida formato y dígito verificador del
// RUC y su unicidad. Devuelve domain.ErrDuplicate si el RUC ya existe.
func (uc *EmpresaUseCase) Create(in dto.CreateEmpresaRequest) (*dto.EmpresaResponse, error) {
	if in.RazonSocial == "" || in.RUC == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ruc.Validate(in.RUC); err != nil {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByRUC(in.RUC)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	tipo := in.Tipo
	if tipo == "" {
		tipo = entity.TipoEmpresaSAC
	}
	now := time.Now()
	empresa := &entity.Empresa{
		ID:          uuid.New().String(),
		RazonSocial: in.RazonSocial,
		RUC:         in.RUC,
		Tipo:        tipo,
		Direccion:   in.Direccion,
		Telefono:    in.Telefono,
		Email:       in.Email,
		Estado:      "active",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(empresa); err != nil {
		return nil, err
	}
	// Configuración inicial por defecto (Perú)
	cfg := &entity.EmpresaConfig{
		ID:           uuid.New().String(),
		EmpresaID:    empresa.ID,
		Moneda:       "PEN",
		TasaIGV:      "18.00",
		ZonaHoraria:  "America/Lima",
		FormatoFecha: "02/01/2006",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.SaveConfig(cfg); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// GetByID obtiene una empresa por ID.
func (uc *EmpresaUseCase) GetByID(id string) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	return toEmpresaResponse(empresa), nil
}

// List lista empresas con paginación.
func (uc *EmpresaUseCase) List(page dto.PageRequest) (*dto.EmpresaListResponse, error) {
	page.Normalize()
	list, err := uc.repo.List(page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count()
	if err != nil {
		return nil, err
	}
	data := make([]dto.EmpresaResponse, 0, len(list))
	for _, e := range list {
		data = append(data, *toEmpresaResponse(e))
	}
	return &dto.EmpresaListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// Update modifica los campos presentes en la petición.
func (uc *EmpresaUseCase) Update(id string, in dto.UpdateEmpresaRequest) (*dto.EmpresaResponse, error) {
	empresa, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if empresa == nil {
		return nil, domain.ErrNotFound
	}
	if in.RazonSocial != nil {
		if *in.RazonSocial == "" {
			return nil, domain.ErrInvalidInput
		}
		empresa.RazonSocial = *in.RazonSocial
	}
	if in.Direccion != nil {
		empresa.Direccion = *in.Direccion
	}
	if in.Telefono != nil {
		empresa.Telefono = *in.Telefono
	}
	if in.Email != nil {
		empresa.Email = *in.Email
	}
	if in.Estado != nil {
		empresa.Estado = *in.Estado
	}
	empresa.UpdatedAt = time.Now()
	if err := uc.repo.Update(empresa); err != nil {
		return nil, err
	}
	return toEmpresaResponse(empresa), nil
}

// GetConfig devuelve la configuración regional/tributaria de la empresa.
func (uc *EmpresaUseCase) GetConfig(empresaID string) (*dto.EmpresaConfigResponse, error) {
	cfg, err := uc.repo.GetConfig(empresaID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	return toConfigResponse(cfg), nil
}

// UpdateConfig modifica los campos de configuración presentes en la petición.
func (uc *EmpresaUseCase) UpdateConfig(empresaID string, in dto.UpdateEmpresaConfigRequest) (*dto.EmpresaConfigResponse, error) {
	cfg, err := uc.repo.GetConfig(empresaID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, domain.ErrNotFound
	}
	if in.Moneda != nil {
		cfg.Moneda = *in.Moneda
	}
	if in.TasaIGV != nil {
		cfg.TasaIGV = *in.TasaIGV
	}
	if in.ZonaHoraria != nil {
		cfg.ZonaHoraria = *in.ZonaHoraria
	}
	if in.FormatoFecha != nil {
		cfg.FormatoFecha = *in.FormatoFecha
	}
	cfg.UpdatedAt = time.Now()
	if err := uc.repo.SaveConfig(cfg); err != nil {
		return nil, err
	}
	return toConfigResponse(cfg), nil
}

func toEmpresaResponse(e *entity.Empresa) *dto.EmpresaResponse {
	if e == nil {
		return nil
	}
	return &dto.EmpresaResponse{
		ID:          e.ID,
		RazonSocial: e.RazonSocial,
		RUC:         e.RUC,
		Tipo:        e.Tipo,
		Direccion:   e.Direccion,
		Telefono:    e.Telefono,
		Email:       e.Email,
		Estado:      e.Estado,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toConfigResponse(c *entity.EmpresaConfig) *dto.EmpresaConfigResponse {
	return &dto.EmpresaConfigResponse{
		EmpresaID:    c.EmpresaID,
		Moneda:       c.Moneda,
		TasaIGV:      c.TasaIGV,
		ZonaHoraria:  c.ZonaHoraria,
		FormatoFecha: c.FormatoFecha,
	}
}
