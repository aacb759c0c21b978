package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
)

// EmpresaHandler maneja las peticiones HTTP del registro de empresas.
type EmpresaHandler struct {
	uc *usecase.EmpresaUseCase
}

// NewEmpresaHandler construye el handler.
func NewEmpresaHandler(uc *usecase.EmpresaUseCase) *EmpresaHandler {
	return &EmpresaHandler{uc: uc}
}

// Create POST /api/empresas
func (h *EmpresaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	empresa, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(empresa)
}

// List GET /api/empresas?page=1&limit=10
func (h *EmpresaHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/empresas/:id
func (h *EmpresaHandler) GetByID(c *fiber.Ctx) error {
	empresa, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(empresa)
}

// Update PUT /api/empresas/:id
func (h *EmpresaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	empresa, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(empresa)
}

// GetConfig GET /api/empresas/:id/configuracion
func (h *EmpresaHandler) GetConfig(c *fiber.Ctx) error {
	cfg, err := h.uc.GetConfig(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}

// UpdateConfig PATCH /api/empresas/:id/configuracion
func (h *EmpresaHandler) UpdateConfig(c *fiber.Ctx) error {
	var in dto.UpdateEmpresaConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cfg, err := h.uc.UpdateConfig(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cfg)
}
