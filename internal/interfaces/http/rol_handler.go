package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
)

// RolHandler maneja roles, sus permisos y sus asignaciones a usuarios.
type RolHandler struct {
	uc *usecase.RolUseCase
}

// NewRolHandler construye el handler.
func NewRolHandler(uc *usecase.RolUseCase) *RolHandler {
	return &RolHandler{uc: uc}
}

// Create POST /api/empresas/:id/roles
func (h *RolHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rol, err := h.uc.Create(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(rol)
}

// List GET /api/empresas/:id/roles?page=1&limit=10
func (h *RolHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Params("id"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/roles/:id
func (h *RolHandler) GetByID(c *fiber.Ctx) error {
	rol, err := h.uc.GetByID(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rol)
}

// Update PUT /api/roles/:id
func (h *RolHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateRolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rol, err := h.uc.Update(GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rol)
}

// Delete DELETE /api/roles/:id
func (h *RolHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AsignarPermiso POST /api/roles/:id/permisos
func (h *RolHandler) AsignarPermiso(c *fiber.Ctx) error {
	var in dto.AsignarPermisoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	permiso, err := h.uc.AsignarPermiso(GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(permiso)
}

// RevocarPermiso DELETE /api/roles/:id/permisos/:permisoId
func (h *RolHandler) RevocarPermiso(c *fiber.Ctx) error {
	if err := h.uc.RevocarPermiso(GetEmpresaID(c), c.Params("id"), c.Params("permisoId")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListPermisos GET /api/roles/:id/permisos
func (h *RolHandler) ListPermisos(c *fiber.Ctx) error {
	permisos, err := h.uc.ListPermisos(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(permisos)
}

// ListCatalogo GET /api/permisos
func (h *RolHandler) ListCatalogo(c *fiber.Ctx) error {
	catalogo, err := h.uc.ListCatalogo()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(catalogo)
}

// GrantDirecto POST /api/usuarios/:id/permisos
func (h *RolHandler) GrantDirecto(c *fiber.Ctx) error {
	var in dto.PermisoDirectoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	permiso, err := h.uc.GrantDirecto(GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(permiso)
}

// RevokeDirecto DELETE /api/usuarios/:id/permisos?recurso=x&accion=y
func (h *RolHandler) RevokeDirecto(c *fiber.Ctx) error {
	if err := h.uc.RevokeDirecto(GetEmpresaID(c), c.Params("id"), c.Query("recurso"), c.Query("accion")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListDirectos GET /api/usuarios/:id/permisos
func (h *RolHandler) ListDirectos(c *fiber.Ctx) error {
	permisos, err := h.uc.ListDirectos(GetEmpresaID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(permisos)
}

// AsignarUsuario POST /api/roles/:id/asignaciones
func (h *RolHandler) AsignarUsuario(c *fiber.Ctx) error {
	var in dto.AsignarRolRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	asignacion, err := h.uc.AsignarUsuario(GetEmpresaID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(asignacion)
}

// ListAsignaciones GET /api/roles/:id/asignaciones?page=1&limit=10
func (h *RolHandler) ListAsignaciones(c *fiber.Ctx) error {
	list, err := h.uc.ListAsignaciones(GetEmpresaID(c), c.Params("id"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// FinalizarAsignacion DELETE /api/asignaciones/:id
func (h *RolHandler) FinalizarAsignacion(c *fiber.Ctx) error {
	if err := h.uc.FinalizarAsignacion(GetEmpresaID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
