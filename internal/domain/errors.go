package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Roles y permisos
	ErrRolEnUso     = errors.New("el rol tiene asignaciones activas")
	ErrLimiteRoles  = errors.New("límite de roles por empresa alcanzado")
	ErrHorarioFuera = errors.New("horario fuera del rango permitido")

	// Documentos de venta
	ErrDocumentoInmutable = errors.New("el documento está en un estado terminal y no puede modificarse")
	ErrEstadoInvalido     = errors.New("transición de estado no permitida")

	// Auditoría
	ErrRateLimited = errors.New("límite de eventos por minuto excedido")

	// Archivos
	ErrLimiteVersiones = errors.New("límite de versiones por archivo alcanzado")
)
