package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/sales"
)

// CotizacionHandler maneja las peticiones HTTP de cotizaciones.
type CotizacionHandler struct {
	uc      *sales.CotizacionUseCase
	ordenUC *sales.OrdenUseCase
}

// NewCotizacionHandler construye el handler.
func NewCotizacionHandler(uc *sales.CotizacionUseCase, ordenUC *sales.OrdenUseCase) *CotizacionHandler {
	return &CotizacionHandler{uc: uc, ordenUC: ordenUC}
}

// Create POST /api/cotizaciones
func (h *CotizacionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cot, err := h.uc.Create(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(cot)
}

// List GET /api/cotizaciones?page=1&limit=10
func (h *CotizacionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetEmpresaID(c), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/cotizaciones/:id
func (h *CotizacionHandler) GetByID(c *fiber.Ctx) error {
	cot, err := h.uc.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cot)
}

// Update PUT /api/cotizaciones/:id (solo en estado PENDIENTE)
func (h *CotizacionHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateCotizacionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cot, err := h.uc.Update(c.Context(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cot)
}

// Delete DELETE /api/cotizaciones/:id
func (h *CotizacionHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Aprobar POST /api/cotizaciones/:id/aprobar
func (h *CotizacionHandler) Aprobar(c *fiber.Ctx) error {
	cot, err := h.uc.Aprobar(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cot)
}

// Anular POST /api/cotizaciones/:id/anular
func (h *CotizacionHandler) Anular(c *fiber.Ctx) error {
	cot, err := h.uc.Anular(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cot)
}

// GenerarOrden POST /api/cotizaciones/:id/orden — convierte la cotización
// aprobada en una orden de venta.
func (h *CotizacionHandler) GenerarOrden(c *fiber.Ctx) error {
	orden, err := h.ordenUC.CreateFromCotizacion(c.Context(), GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orden)
}
