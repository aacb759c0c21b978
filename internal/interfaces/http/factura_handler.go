package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/sales"
)

// FacturaHandler maneja las peticiones HTTP de facturas y sus notas.
type FacturaHandler struct {
	uc *sales.FacturaUseCase
}

// NewFacturaHandler construye el handler.
func NewFacturaHandler(uc *sales.FacturaUseCase) *FacturaHandler {
	return &FacturaHandler{uc: uc}
}

// List GET /api/facturas?page=1&limit=10
func (h *FacturaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetEmpresaID(c), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/facturas/:id
func (h *FacturaHandler) GetByID(c *fiber.Ctx) error {
	factura, err := h.uc.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(factura)
}

// Pagar POST /api/facturas/:id/pagar
func (h *FacturaHandler) Pagar(c *fiber.Ctx) error {
	factura, err := h.uc.Pagar(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(factura)
}

// Anular POST /api/facturas/:id/anular
func (h *FacturaHandler) Anular(c *fiber.Ctx) error {
	factura, err := h.uc.Anular(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(factura)
}

// CrearNota POST /api/facturas/:id/notas
func (h *FacturaHandler) CrearNota(c *fiber.Ctx) error {
	var in dto.CreateNotaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	nota, err := h.uc.CrearNota(c.Context(), GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(nota)
}

// ListNotas GET /api/facturas/:id/notas
func (h *FacturaHandler) ListNotas(c *fiber.Ctx) error {
	notas, err := h.uc.ListNotas(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(notas)
}
