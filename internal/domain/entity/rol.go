package entity

import "time"

// Límites de negocio para roles.
const (
	MaxRolesPorEmpresa  = 50
	HorarioMinimo       = "06:00"
	HorarioMaximo       = "23:00"
	VigenciaMaximaAnios = 5
)

// Rol representa un rol de acceso. Si EmpresaID está vacío y EsSistema es true,
// el rol aplica a todo el sistema; en caso contrario pertenece a una empresa y
// su nombre es único dentro de ella.
type Rol struct {
	ID            string
	EmpresaID     string // vacío para roles de sistema
	Nombre        string
	Descripcion   string
	EsSistema     bool
	HorarioInicio *string // "HH:MM", nil = sin restricción horaria
	HorarioFin    *string
	FechaInicio   *time.Time // ventana de vigencia, nil = sin límite
	FechaFin      *time.Time
	Estado        string // active, inactive
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Permiso es una entrada del catálogo global (recurso, acción).
type Permiso struct {
	ID          string
	Recurso     string // "cita", "rol", "factura", ...
	Accion      string // "leer", "crear", "editar", "eliminar", "exportar"
	Descripcion string
	CreatedAt   time.Time
}

// RolPermiso asocia un permiso a un rol. Recurso y Accion se copian del catálogo
// en el momento de la asignación (snapshot).
type RolPermiso struct {
	ID        string
	RolID     string
	PermisoID string
	Recurso   string
	Accion    string
	CreatedAt time.Time
}

// UsuarioRol asocia un usuario a un rol dentro de una empresa.
// La asignación está activa si FechaFin es nil o futura.
type UsuarioRol struct {
	ID          string
	UsuarioID   string
	RolID       string
	EmpresaID   string
	FechaInicio time.Time
	FechaFin    *time.Time
	CreatedAt   time.Time
}

// Activa informa si la asignación sigue vigente en el instante dado.
func (ur *UsuarioRol) Activa(now time.Time) bool {
	return ur.FechaFin == nil || ur.FechaFin.After(now)
}

// UsuarioPermiso es un permiso otorgado directamente a un usuario (sin rol).
type UsuarioPermiso struct {
	ID        string
	UsuarioID string
	EmpresaID string
	Recurso   string
	Accion    string
	CreatedAt time.Time
}
