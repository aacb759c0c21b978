package authz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/authz"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePermisoRepo struct {
	directos  []*entity.UsuarioPermiso
	porRol    map[string][]*entity.RolPermiso
	catalogos []*entity.Permiso
}

func (f *fakePermisoRepo) GetByID(id string) (*entity.Permiso, error) {
	for _, p := range f.catalogos {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePermisoRepo) GetByRecursoAccion(recurso, accion string) (*entity.Permiso, error) {
	for _, p := range f.catalogos {
		if p.Recurso == recurso && p.Accion == accion {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePermisoRepo) List() ([]*entity.Permiso, error) { return f.catalogos, nil }

func (f *fakePermisoRepo) AddToRol(rp *entity.RolPermiso) error {
	if f.porRol == nil {
		f.porRol = map[string][]*entity.RolPermiso{}
	}
	f.porRol[rp.RolID] = append(f.porRol[rp.RolID], rp)
	return nil
}

func (f *fakePermisoRepo) RemoveFromRol(rolID, permisoID string) error { return nil }

func (f *fakePermisoRepo) ListByRol(rolID string) ([]*entity.RolPermiso, error) {
	return f.porRol[rolID], nil
}

func (f *fakePermisoRepo) GrantDirecto(up *entity.UsuarioPermiso) error {
	f.directos = append(f.directos, up)
	return nil
}

func (f *fakePermisoRepo) RevokeDirecto(usuarioID, empresaID, recurso, accion string) error {
	return nil
}

func (f *fakePermisoRepo) ListDirectosByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioPermiso, error) {
	var out []*entity.UsuarioPermiso
	for _, p := range f.directos {
		if p.UsuarioID == usuarioID && p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRolRepo struct {
	roles map[string]*entity.Rol
}

func (f *fakeRolRepo) Create(rol *entity.Rol) error { return nil }
func (f *fakeRolRepo) GetByID(id string) (*entity.Rol, error) {
	return f.roles[id], nil
}
func (f *fakeRolRepo) GetByNombre(empresaID, nombre string) (*entity.Rol, error) { return nil, nil }
func (f *fakeRolRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Rol, error) {
	return nil, nil
}
func (f *fakeRolRepo) CountByEmpresa(empresaID string) (int, error) { return 0, nil }
func (f *fakeRolRepo) Update(rol *entity.Rol) error                 { return nil }
func (f *fakeRolRepo) Delete(id string) error                       { return nil }

type fakeAsignacionRepo struct {
	empresa []*entity.UsuarioRol
	sistema []*entity.UsuarioRol
}

func (f *fakeAsignacionRepo) Create(a *entity.UsuarioRol) error          { return nil }
func (f *fakeAsignacionRepo) GetByID(id string) (*entity.UsuarioRol, error) { return nil, nil }
func (f *fakeAsignacionRepo) Finalizar(id string, fechaFin time.Time) error { return nil }
func (f *fakeAsignacionRepo) ListActivasByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioRol, error) {
	return f.empresa, nil
}
func (f *fakeAsignacionRepo) ListActivasSistema(usuarioID string) ([]*entity.UsuarioRol, error) {
	return f.sistema, nil
}
func (f *fakeAsignacionRepo) CountActivasByRol(rolID string) (int, error) { return 0, nil }
func (f *fakeAsignacionRepo) ListByRol(rolID string, limit, offset int) ([]*entity.UsuarioRol, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	usuarioID = "u-1"
	empresaID = "e-1"
)

// mediodía de un martes, para que los horarios diarios sean predecibles
var mediodia = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func rolActivo(id string) *entity.Rol {
	return &entity.Rol{ID: id, EmpresaID: empresaID, Nombre: id, Estado: "active"}
}

func asignacion(rolID string) *entity.UsuarioRol {
	return &entity.UsuarioRol{
		ID: "a-" + rolID, UsuarioID: usuarioID, RolID: rolID, EmpresaID: empresaID,
		FechaInicio: mediodia.AddDate(0, -1, 0),
		CreatedAt:   mediodia.AddDate(0, -1, 0),
	}
}

func conPermiso(repo *fakePermisoRepo, rolID, recurso, accion string) {
	_ = repo.AddToRol(&entity.RolPermiso{
		ID: rolID + "/" + recurso + ":" + accion, RolID: rolID,
		Recurso: recurso, Accion: accion,
	})
}

func newResolver(p *fakePermisoRepo, r *fakeRolRepo, a *fakeAsignacionRepo) *authz.Resolver {
	return authz.NewResolver(p, r, a).WithClock(func() time.Time { return mediodia })
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

// Un permiso directo otorga sin consultar roles.
func TestHasPermission_PermisoDirecto(t *testing.T) {
	permisos := &fakePermisoRepo{}
	_ = permisos.GrantDirecto(&entity.UsuarioPermiso{
		UsuarioID: usuarioID, EmpresaID: empresaID, Recurso: "factura", Accion: "leer",
	})
	r := newResolver(permisos, &fakeRolRepo{}, &fakeAsignacionRepo{})

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "factura", "leer")
	require.NoError(t, err)
	assert.True(t, ok)
}

// Un rol de empresa vigente con el permiso otorga.
func TestHasPermission_RolDeEmpresa(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "vendedor", "cotizacion", "crear")
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"vendedor": rolActivo("vendedor")}}
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{asignacion("vendedor")}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "cotizacion", "crear")
	require.NoError(t, err)
	assert.True(t, ok)
}

// Sin ninguna fuente que otorgue, la denegación es implícita.
func TestHasPermission_DenegacionImplicita(t *testing.T) {
	r := newResolver(&fakePermisoRepo{}, &fakeRolRepo{}, &fakeAsignacionRepo{})

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "factura", "eliminar")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Un rol con horario 06:00–11:00 no otorga al mediodía.
func TestHasPermission_FueraDeHorario(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "turno-manana", "factura", "leer")
	rol := rolActivo("turno-manana")
	rol.HorarioInicio = strPtr("06:00")
	rol.HorarioFin = strPtr("11:00")
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"turno-manana": rol}}
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{asignacion("turno-manana")}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "factura", "leer")
	require.NoError(t, err)
	assert.False(t, ok, "a las 12:00 el rol de turno mañana no aplica")
}

// El mismo rol sí otorga dentro de su horario.
func TestHasPermission_DentroDeHorario(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "turno-manana", "factura", "leer")
	rol := rolActivo("turno-manana")
	rol.HorarioInicio = strPtr("06:00")
	rol.HorarioFin = strPtr("14:00")
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"turno-manana": rol}}
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{asignacion("turno-manana")}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "factura", "leer")
	require.NoError(t, err)
	assert.True(t, ok)
}

// Un rol con ventana de vigencia vencida no otorga.
func TestHasPermission_VigenciaVencida(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "temporal", "factura", "leer")
	rol := rolActivo("temporal")
	inicio := mediodia.AddDate(-1, 0, 0)
	fin := mediodia.AddDate(0, 0, -1)
	rol.FechaInicio = &inicio
	rol.FechaFin = &fin
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"temporal": rol}}
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{asignacion("temporal")}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "factura", "leer")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Una asignación finalizada (fecha_fin pasada) no cuenta.
func TestHasPermission_AsignacionFinalizada(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "vendedor", "cotizacion", "crear")
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"vendedor": rolActivo("vendedor")}}
	a := asignacion("vendedor")
	ayer := mediodia.AddDate(0, 0, -1)
	a.FechaFin = &ayer
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{a}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "cotizacion", "crear")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Un rol inactivo se omite aunque tenga el permiso.
func TestHasPermission_RolInactivo(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "vendedor", "cotizacion", "crear")
	rol := rolActivo("vendedor")
	rol.Estado = "inactive"
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"vendedor": rol}}
	asignaciones := &fakeAsignacionRepo{empresa: []*entity.UsuarioRol{asignacion("vendedor")}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "cotizacion", "crear")
	require.NoError(t, err)
	assert.False(t, ok)
}

// Los roles de sistema otorgan cuando ningún rol de empresa lo hace.
func TestHasPermission_RolDeSistema(t *testing.T) {
	permisos := &fakePermisoRepo{}
	conPermiso(permisos, "superadmin", "empresa", "editar")
	rolSistema := &entity.Rol{ID: "superadmin", Nombre: "superadmin", EsSistema: true, Estado: "active"}
	roles := &fakeRolRepo{roles: map[string]*entity.Rol{"superadmin": rolSistema}}
	asignaciones := &fakeAsignacionRepo{sistema: []*entity.UsuarioRol{{
		ID: "a-sys", UsuarioID: usuarioID, RolID: "superadmin",
		FechaInicio: mediodia.AddDate(0, -1, 0), CreatedAt: mediodia.AddDate(0, -1, 0),
	}}}
	r := newResolver(permisos, roles, asignaciones)

	ok, err := r.HasPermission(context.Background(), usuarioID, empresaID, "empresa", "editar")
	require.NoError(t, err)
	assert.True(t, ok)
}

// Entradas vacías deniegan sin error.
func TestHasPermission_EntradasVacias(t *testing.T) {
	r := newResolver(&fakePermisoRepo{}, &fakeRolRepo{}, &fakeAsignacionRepo{})

	ok, err := r.HasPermission(context.Background(), "", empresaID, "factura", "leer")
	require.NoError(t, err)
	assert.False(t, ok)
}

// MinutosDelDia convierte y valida "HH:MM". El formato es estricto: siempre
// dos dígitos por campo y nada más que HH:MM.
func TestMinutosDelDia(t *testing.T) {
	n, err := authz.MinutosDelDia("06:30")
	require.NoError(t, err)
	assert.Equal(t, 390, n)

	n, err = authz.MinutosDelDia("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	n, err = authz.MinutosDelDia("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, n)

	// fuera de rango, dígitos sueltos, basura al final, separador incorrecto
	invalidos := []string{"25:00", "12:60", "banana", "6:5", "6:05", "06:00x", "-6:30", "06-30", ""}
	for _, s := range invalidos {
		_, err := authz.MinutosDelDia(s)
		assert.Error(t, err, "debe rechazar %q", s)
	}
}
