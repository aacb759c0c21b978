package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/dto"
)

// permissionChecker es el contrato mínimo que necesita el middleware para
// resolver permisos. Lo implementa *authz.Resolver; el uso de interfaz evita
// el import circular.
type permissionChecker interface {
	HasPermission(ctx context.Context, usuarioID, empresaID, recurso, accion string) (bool, error)
}

// RequirePermission devuelve un middleware Fiber que verifica si el usuario
// del token puede ejecutar (recurso, acción) en su empresa. Debe usarse
// DESPUÉS de AuthMiddleware (necesita LocalUserID y LocalEmpresaID).
//
// Comportamiento:
//   - 403 Forbidden → ningún permiso directo, de rol vigente ni de sistema lo otorga.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
//   - Si no hay usuario en el contexto, responde 401 (el AuthMiddleware debería haberlo puesto).
// RequireEmpresaPropia exige que el :id de empresa de la ruta coincida con la
// empresa del token. Sin esta verificación, un permiso otorgado en la empresa
// propia serviría para operar sobre cualquier otra.
func RequireEmpresaPropia() fiber.Handler {
	return func(c *fiber.Ctx) error {
		empresaID := GetEmpresaID(c)
		if empresaID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "empresa no encontrada en el token",
			})
		}
		if c.Params("id") != empresaID {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "la empresa de la ruta no corresponde al token",
			})
		}
		return c.Next()
	}
}

func RequirePermission(recurso, accion string, checker permissionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		usuarioID := GetUserID(c)
		empresaID := GetEmpresaID(c)
		if usuarioID == "" || empresaID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "usuario no encontrado en el token",
			})
		}

		ok, err := checker.HasPermission(c.Context(), usuarioID, empresaID, recurso, accion)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERMISSION_CHECK_FAILED",
				Message: "no se pudo verificar el permiso, intente más tarde",
			})
		}
		if !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "no tiene permiso para '" + accion + "' sobre '" + recurso + "'",
			})
		}
		return c.Next()
	}
}
