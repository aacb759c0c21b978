package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/domain"
)

// errorStatus mapea errores de dominio a (status, code). Los handlers delegan
// aquí para responder de forma uniforme.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrHorarioFuera):
		return fiber.StatusBadRequest, "HORARIO_FUERA"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrRolEnUso):
		return fiber.StatusConflict, "ROL_EN_USO"
	case errors.Is(err, domain.ErrLimiteRoles):
		return fiber.StatusConflict, "LIMITE_ROLES"
	case errors.Is(err, domain.ErrDocumentoInmutable):
		return fiber.StatusConflict, "DOCUMENTO_INMUTABLE"
	case errors.Is(err, domain.ErrEstadoInvalido):
		return fiber.StatusConflict, "ESTADO_INVALIDO"
	case errors.Is(err, domain.ErrLimiteVersiones):
		return fiber.StatusConflict, "LIMITE_VERSIONES"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrRateLimited):
		return fiber.StatusTooManyRequests, "RATE_LIMITED"
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError responde el JSON de error estándar para un error de dominio.
func respondError(c *fiber.Ctx, err error) error {
	status, code := errorStatus(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// parsePage extrae page y limit del query string (defaults y rangos se aplican
// en Normalize).
func parsePage(c *fiber.Ctx) dto.PageRequest {
	var page dto.PageRequest
	_ = c.QueryParser(&page)
	page.Normalize()
	return page
}
