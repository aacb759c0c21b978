package audit

import (
	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/internal/domain/repository"
)

// Exporter renderiza un conjunto de eventos a un buffer descargable.
// Implementaciones en infrastructure/export: XLSX, CSV y PDF.
type Exporter interface {
	ContentType() string
	FileName() string
	Render(eventos []*entity.EventoAuditoria) ([]byte, error)
}

// QueryUseCase consulta y exporta eventos de auditoría.
type QueryUseCase struct {
	repo      repository.AuditoriaRepository
	exporters map[string]Exporter // por formato: "xlsx", "csv", "pdf"
}

// NewQueryUseCase construye el caso de uso con los exportadores disponibles.
func NewQueryUseCase(repo repository.AuditoriaRepository, exporters map[string]Exporter) *QueryUseCase {
	return &QueryUseCase{repo: repo, exporters: exporters}
}

// maxExportRows acota la exportación para no materializar conjuntos enormes.
const maxExportRows = 10000

// List devuelve eventos filtrados y paginados con metadatos de página.
func (uc *QueryUseCase) List(empresaID string, filtro dto.FiltroAuditoriaRequest, page dto.PageRequest) (*dto.EventoListResponse, error) {
	page.Normalize()
	f := toFiltro(empresaID, filtro)
	eventos, err := uc.repo.List(f, page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := uc.repo.Count(f)
	if err != nil {
		return nil, err
	}
	data := make([]dto.EventoResponse, 0, len(eventos))
	for _, e := range eventos {
		data = append(data, *toEventoResponse(e))
	}
	return &dto.EventoListResponse{
		Data: data,
		Meta: dto.NewPageMeta(total, page.Page, page.Limit),
	}, nil
}

// GetByID obtiene un evento verificando pertenencia a la empresa.
func (uc *QueryUseCase) GetByID(empresaID, id string) (*dto.EventoResponse, error) {
	e, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if e == nil || e.EmpresaID != empresaID {
		return nil, domain.ErrNotFound
	}
	return toEventoResponse(e), nil
}

// Export renderiza el conjunto filtrado en el formato pedido y devuelve el
// buffer junto con content-type y nombre de archivo sugerido.
func (uc *QueryUseCase) Export(empresaID, formato string, filtro dto.FiltroAuditoriaRequest) (data []byte, contentType, fileName string, err error) {
	exporter, ok := uc.exporters[formato]
	if !ok {
		return nil, "", "", domain.ErrInvalidInput
	}
	eventos, err := uc.repo.List(toFiltro(empresaID, filtro), maxExportRows, 0)
	if err != nil {
		return nil, "", "", err
	}
	buf, err := exporter.Render(eventos)
	if err != nil {
		return nil, "", "", err
	}
	return buf, exporter.ContentType(), exporter.FileName(), nil
}

func toFiltro(empresaID string, in dto.FiltroAuditoriaRequest) repository.FiltroAuditoria {
	return repository.FiltroAuditoria{
		EmpresaID:   empresaID,
		Accion:      in.Accion,
		RecursoTipo: in.RecursoTipo,
		Severidad:   in.Severidad,
		ActorID:     in.ActorID,
		Desde:       in.Desde,
		Hasta:       in.Hasta,
		Texto:       in.Texto,
	}
}
