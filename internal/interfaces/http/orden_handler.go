package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/sales"
)

// OrdenHandler maneja las peticiones HTTP de órdenes de venta.
type OrdenHandler struct {
	uc *sales.OrdenUseCase
}

// NewOrdenHandler construye el handler.
func NewOrdenHandler(uc *sales.OrdenUseCase) *OrdenHandler {
	return &OrdenHandler{uc: uc}
}

// Create POST /api/ordenes
func (h *OrdenHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrdenRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	orden, err := h.uc.Create(c.Context(), GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(orden)
}

// List GET /api/ordenes?page=1&limit=10
func (h *OrdenHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(GetEmpresaID(c), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/ordenes/:id
func (h *OrdenHandler) GetByID(c *fiber.Ctx) error {
	orden, err := h.uc.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orden)
}

// Aprobar POST /api/ordenes/:id/aprobar
func (h *OrdenHandler) Aprobar(c *fiber.Ctx) error {
	orden, err := h.uc.Aprobar(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orden)
}

// Anular POST /api/ordenes/:id/anular
func (h *OrdenHandler) Anular(c *fiber.Ctx) error {
	orden, err := h.uc.Anular(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orden)
}

// Facturar POST /api/ordenes/:id/facturar — genera la factura de la orden
// aprobada. El body es opcional ({"serie": "F001"}).
func (h *OrdenHandler) Facturar(c *fiber.Ctx) error {
	var in dto.FacturarOrdenRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	factura, err := h.uc.Facturar(c.Context(), GetEmpresaID(c), c.Params("id"), in.Serie)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(factura)
}
