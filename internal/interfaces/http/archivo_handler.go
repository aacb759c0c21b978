package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
)

// ArchivoHandler maneja el registro de archivos y sus versiones.
type ArchivoHandler struct {
	uc *usecase.ArchivoUseCase
}

// NewArchivoHandler construye el handler.
func NewArchivoHandler(uc *usecase.ArchivoUseCase) *ArchivoHandler {
	return &ArchivoHandler{uc: uc}
}

// Create POST /api/archivos
func (h *ArchivoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateArchivoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	archivo, err := h.uc.Create(GetEmpresaID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(archivo)
}

// List GET /api/archivos?page=1&limit=10&inactivos=true
func (h *ArchivoHandler) List(c *fiber.Ctx) error {
	incluirInactivos := c.QueryBool("inactivos")
	list, err := h.uc.List(GetEmpresaID(c), incluirInactivos, parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/archivos/:id — cuenta como descarga de metadatos.
func (h *ArchivoHandler) GetByID(c *fiber.Ctx) error {
	archivo, err := h.uc.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(archivo)
}

// Delete DELETE /api/archivos/:id — baja lógica.
func (h *ArchivoHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AddVersion POST /api/archivos/:id/versiones
func (h *ArchivoHandler) AddVersion(c *fiber.Ctx) error {
	var in dto.CreateVersionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	version, err := h.uc.AddVersion(GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(version)
}

// ListVersiones GET /api/archivos/:id/versiones
func (h *ArchivoHandler) ListVersiones(c *fiber.Ctx) error {
	versiones, err := h.uc.ListVersiones(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(versiones)
}
