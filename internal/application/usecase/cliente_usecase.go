package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// ClienteUseCase casos de uso para clientes de una empresa.
type ClienteUseCase struct {
	repo repository.ClienteRepository
}

// NewClienteUseCase construye el caso de uso.
func NewClienteUseCase(repo repository.ClienteRepository) *ClienteUseCase {
	return &ClienteUseCase{repo: repo}
}

// Create registra un cliente. El documento es único por empresa.
func (uc *ClienteUseCase) Create(empresaID string, in dto.CreateClienteRequest) (*dto.ClienteResponse, error) {
	if in.Nombre == "" || in.Documento == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByEmpresaAndDocumento(empresaID, in.Documento)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	cliente := &entity.Cliente{
		ID:        uuid.New().String(),
		EmpresaID: empresaID,
		Nombre:    in.Nombre,
		Documento: in.Documento,
		Email:     in.Email,
		Telefono:  in.Telefono,
		Direccion: in.Direccion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(cliente); err != nil {
		return nil, err
	}
	return toClienteResponse(cliente), nil
}

// List lista clientes de la empresa con paginación.
func (uc *ClienteUseCase) List(empresaID string, page dto.PageRequest) (*dto.ClienteListResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByEmpresa(empresaID, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.CountByEmpresa(empresaID)
	if err != nil {
		return nil, err
	}
	data := make([]dto.ClienteResponse, 0, len(list))
	for _, c := range list {
		data = append(data, *toClienteResponse(c))
	}
	return &dto.ClienteListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

func toClienteResponse(c *entity.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:        c.ID,
		EmpresaID: c.EmpresaID,
		Nombre:    c.Nombre,
		Documento: c.Documento,
		Email:     c.Email,
		Telefono:  c.Telefono,
		Direccion: c.Direccion,
		CreatedAt: c.CreatedAt,
	}
}
