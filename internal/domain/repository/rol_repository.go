package repository

import (
	"time"

	"github.com/gestium/gestium-api/internal/domain/entity"
)

// RolRepository define el puerto de persistencia para Rol.
type RolRepository interface {
	Create(rol *entity.Rol) error
	GetByID(id string) (*entity.Rol, error)
	// GetByNombre busca un rol por nombre dentro de una empresa (unicidad).
	GetByNombre(empresaID, nombre string) (*entity.Rol, error)
	ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Rol, error)
	CountByEmpresa(empresaID string) (int, error)
	Update(rol *entity.Rol) error
	Delete(id string) error
}

// PermisoRepository cubre el catálogo de permisos, los permisos por rol y los
// permisos directos por usuario.
type PermisoRepository interface {
	// Catálogo global
	GetByID(id string) (*entity.Permiso, error)
	GetByRecursoAccion(recurso, accion string) (*entity.Permiso, error)
	List() ([]*entity.Permiso, error)

	// Permisos de un rol (snapshot de recurso/acción al asignar)
	AddToRol(rp *entity.RolPermiso) error
	RemoveFromRol(rolID, permisoID string) error
	ListByRol(rolID string) ([]*entity.RolPermiso, error)

	// Permisos directos de usuario
	GrantDirecto(up *entity.UsuarioPermiso) error
	RevokeDirecto(usuarioID, empresaID, recurso, accion string) error
	ListDirectosByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioPermiso, error)
}

// AsignacionRepository define el puerto para asignaciones usuario-rol.
type AsignacionRepository interface {
	Create(a *entity.UsuarioRol) error
	GetByID(id string) (*entity.UsuarioRol, error)
	// Finalizar cierra la asignación fijando fecha_fin.
	Finalizar(id string, fechaFin time.Time) error
	// ListActivasByUsuario devuelve las asignaciones vigentes del usuario en la
	// empresa, ordenadas por fecha de creación ascendente (orden de resolución).
	ListActivasByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioRol, error)
	// ListActivasSistema devuelve las asignaciones vigentes del usuario sobre
	// roles de sistema (sin empresa).
	ListActivasSistema(usuarioID string) ([]*entity.UsuarioRol, error)
	CountActivasByRol(rolID string) (int, error)
	ListByRol(rolID string, limit, offset int) ([]*entity.UsuarioRol, error)
}
