package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/application/dto"
)

// AuditoriaHandler maneja el registro, la consulta y la exportación del
// historial de auditoría.
type AuditoriaHandler struct {
	recorder *audit.Recorder
	query    *audit.QueryUseCase
}

// NewAuditoriaHandler construye el handler.
func NewAuditoriaHandler(recorder *audit.Recorder, query *audit.QueryUseCase) *AuditoriaHandler {
	return &AuditoriaHandler{recorder: recorder, query: query}
}

// Registrar POST /api/auditoria
func (h *AuditoriaHandler) Registrar(c *fiber.Ctx) error {
	var in dto.RegistrarEventoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	evento, err := h.recorder.Record(in, audit.Contexto{
		EmpresaID: GetEmpresaID(c),
		ActorID:   GetUserID(c),
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(evento)
}

// List GET /api/auditoria?accion=&recurso=&severidad=&actor=&desde=&hasta=&q=&page=&limit=
func (h *AuditoriaHandler) List(c *fiber.Ctx) error {
	var filtro dto.FiltroAuditoriaRequest
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	list, err := h.query.List(GetEmpresaID(c), filtro, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/auditoria/:id
func (h *AuditoriaHandler) GetByID(c *fiber.Ctx) error {
	evento, err := h.query.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(evento)
}

// Exportar GET /api/auditoria/exportar?formato=xlsx|csv|pdf
func (h *AuditoriaHandler) Exportar(c *fiber.Ctx) error {
	var filtro dto.FiltroAuditoriaRequest
	if err := c.QueryParser(&filtro); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	formato := c.Query("formato", "csv")
	data, contentType, fileName, err := h.query.Export(GetEmpresaID(c), formato, filtro)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+fileName+`"`)
	return c.Send(data)
}
