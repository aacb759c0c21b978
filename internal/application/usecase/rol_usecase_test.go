package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
	"github.com/gestium/gestium-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memRolRepo struct {
	roles map[string]*entity.Rol
}

func newMemRolRepo() *memRolRepo { return &memRolRepo{roles: map[string]*entity.Rol{}} }

func (m *memRolRepo) Create(rol *entity.Rol) error {
	m.roles[rol.ID] = rol
	return nil
}

func (m *memRolRepo) GetByID(id string) (*entity.Rol, error) { return m.roles[id], nil }

func (m *memRolRepo) GetByNombre(empresaID, nombre string) (*entity.Rol, error) {
	for _, r := range m.roles {
		if r.EmpresaID == empresaID && r.Nombre == nombre {
			return r, nil
		}
	}
	return nil, nil
}

func (m *memRolRepo) ListByEmpresa(empresaID string, limit, offset int) ([]*entity.Rol, error) {
	var out []*entity.Rol
	for _, r := range m.roles {
		if r.EmpresaID == empresaID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRolRepo) CountByEmpresa(empresaID string) (int, error) {
	n := 0
	for _, r := range m.roles {
		if r.EmpresaID == empresaID {
			n++
		}
	}
	return n, nil
}

func (m *memRolRepo) Update(rol *entity.Rol) error {
	m.roles[rol.ID] = rol
	return nil
}

func (m *memRolRepo) Delete(id string) error {
	delete(m.roles, id)
	return nil
}

type memPermisoRepo struct {
	catalogo []*entity.Permiso
	porRol   map[string][]*entity.RolPermiso
	directos []*entity.UsuarioPermiso
}

func newMemPermisoRepo() *memPermisoRepo {
	return &memPermisoRepo{porRol: map[string][]*entity.RolPermiso{}}
}

func (m *memPermisoRepo) GetByID(id string) (*entity.Permiso, error) {
	for _, p := range m.catalogo {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memPermisoRepo) GetByRecursoAccion(recurso, accion string) (*entity.Permiso, error) {
	for _, p := range m.catalogo {
		if p.Recurso == recurso && p.Accion == accion {
			return p, nil
		}
	}
	return nil, nil
}

func (m *memPermisoRepo) List() ([]*entity.Permiso, error) { return m.catalogo, nil }

func (m *memPermisoRepo) AddToRol(rp *entity.RolPermiso) error {
	m.porRol[rp.RolID] = append(m.porRol[rp.RolID], rp)
	return nil
}

func (m *memPermisoRepo) RemoveFromRol(rolID, permisoID string) error {
	kept := m.porRol[rolID][:0]
	for _, p := range m.porRol[rolID] {
		if p.PermisoID != permisoID {
			kept = append(kept, p)
		}
	}
	m.porRol[rolID] = kept
	return nil
}

func (m *memPermisoRepo) ListByRol(rolID string) ([]*entity.RolPermiso, error) {
	return m.porRol[rolID], nil
}

func (m *memPermisoRepo) GrantDirecto(up *entity.UsuarioPermiso) error {
	m.directos = append(m.directos, up)
	return nil
}

func (m *memPermisoRepo) RevokeDirecto(usuarioID, empresaID, recurso, accion string) error {
	kept := m.directos[:0]
	for _, p := range m.directos {
		if p.UsuarioID == usuarioID && p.EmpresaID == empresaID && p.Recurso == recurso && p.Accion == accion {
			continue
		}
		kept = append(kept, p)
	}
	m.directos = kept
	return nil
}

func (m *memPermisoRepo) ListDirectosByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioPermiso, error) {
	var out []*entity.UsuarioPermiso
	for _, p := range m.directos {
		if p.UsuarioID == usuarioID && p.EmpresaID == empresaID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memAsignacionRepo struct {
	asignaciones map[string]*entity.UsuarioRol
}

func newMemAsignacionRepo() *memAsignacionRepo {
	return &memAsignacionRepo{asignaciones: map[string]*entity.UsuarioRol{}}
}

func (m *memAsignacionRepo) Create(a *entity.UsuarioRol) error {
	m.asignaciones[a.ID] = a
	return nil
}

func (m *memAsignacionRepo) GetByID(id string) (*entity.UsuarioRol, error) {
	return m.asignaciones[id], nil
}

func (m *memAsignacionRepo) Finalizar(id string, fechaFin time.Time) error {
	if a := m.asignaciones[id]; a != nil {
		a.FechaFin = &fechaFin
	}
	return nil
}

func (m *memAsignacionRepo) ListActivasByUsuario(usuarioID, empresaID string) ([]*entity.UsuarioRol, error) {
	return nil, nil
}

func (m *memAsignacionRepo) ListActivasSistema(usuarioID string) ([]*entity.UsuarioRol, error) {
	return nil, nil
}

func (m *memAsignacionRepo) CountActivasByRol(rolID string) (int, error) {
	now := time.Now()
	n := 0
	for _, a := range m.asignaciones {
		if a.RolID == rolID && a.Activa(now) {
			n++
		}
	}
	return n, nil
}

func (m *memAsignacionRepo) ListByRol(rolID string, limit, offset int) ([]*entity.UsuarioRol, error) {
	var out []*entity.UsuarioRol
	for _, a := range m.asignaciones {
		if a.RolID == rolID {
			out = append(out, a)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const empresaTest = "empresa-1"

func strPtr(s string) *string { return &s }

func newRolUC() (*usecase.RolUseCase, *memRolRepo, *memPermisoRepo, *memAsignacionRepo) {
	roles := newMemRolRepo()
	permisos := newMemPermisoRepo()
	asignaciones := newMemAsignacionRepo()
	uc := usecase.NewRolUseCase(roles, permisos, asignaciones, logger.Nop())
	return uc, roles, permisos, asignaciones
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación y validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRolCreate_OK(t *testing.T) {
	uc, _, _, _ := newRolUC()

	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)
	assert.Equal(t, "Vendedor", rol.Nombre)
	assert.Equal(t, "active", rol.Estado)
	assert.Empty(t, rol.AdvertenciaHorario)
}

func TestRolCreate_NombreDuplicado(t *testing.T) {
	uc, _, _, _ := newRolUC()
	_, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)

	_, err = uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// El mismo nombre en otra empresa no colisiona.
func TestRolCreate_MismoNombreOtraEmpresa(t *testing.T) {
	uc, _, _, _ := newRolUC()
	_, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)

	_, err = uc.Create("empresa-2", dto.CreateRolRequest{Nombre: "Vendedor"})
	assert.NoError(t, err)
}

func TestRolCreate_LimitePorEmpresa(t *testing.T) {
	uc, roles, _, _ := newRolUC()
	for i := 0; i < entity.MaxRolesPorEmpresa; i++ {
		_ = roles.Create(&entity.Rol{
			ID:        fmt.Sprintf("rol-%d", i),
			EmpresaID: empresaTest,
			Nombre:    fmt.Sprintf("rol-%d", i),
			Estado:    "active",
		})
	}

	_, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "uno-mas"})
	assert.ErrorIs(t, err, domain.ErrLimiteRoles)
}

func TestRolCreate_HorarioFueraDeRango(t *testing.T) {
	uc, _, _, _ := newRolUC()

	// 05:00 está antes del mínimo permitido (06:00)
	_, err := uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Madrugador", HorarioInicio: strPtr("05:00"), HorarioFin: strPtr("10:00"),
	})
	assert.ErrorIs(t, err, domain.ErrHorarioFuera)

	// 23:30 supera el máximo (23:00)
	_, err = uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Nocturno", HorarioInicio: strPtr("18:00"), HorarioFin: strPtr("23:30"),
	})
	assert.ErrorIs(t, err, domain.ErrHorarioFuera)
}

func TestRolCreate_HorarioInvalido(t *testing.T) {
	uc, _, _, _ := newRolUC()

	// inicio >= fin
	_, err := uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Invertido", HorarioInicio: strPtr("14:00"), HorarioFin: strPtr("09:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// solo un extremo
	_, err = uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Incompleto", HorarioInicio: strPtr("09:00"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un horario de más de 8 horas se ACEPTA pero devuelve advertencia; dentro de
// 8 horas no hay advertencia.
func TestRolCreate_AdvertenciaHorarioLargo(t *testing.T) {
	uc, _, _, _ := newRolUC()

	largo, err := uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Turno largo", HorarioInicio: strPtr("08:00"), HorarioFin: strPtr("20:00"),
	})
	require.NoError(t, err, "el horario largo se acepta igual")
	assert.NotEmpty(t, largo.AdvertenciaHorario)

	corto, err := uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Turno corto", HorarioInicio: strPtr("08:00"), HorarioFin: strPtr("16:00"),
	})
	require.NoError(t, err)
	assert.Empty(t, corto.AdvertenciaHorario)
}

func TestRolCreate_VigenciaInvalida(t *testing.T) {
	uc, _, _, _ := newRolUC()
	now := time.Now()

	// fin en el pasado
	inicio := now.AddDate(0, -2, 0)
	fin := now.AddDate(0, -1, 0)
	_, err := uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Vencido", FechaInicio: &inicio, FechaFin: &fin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// duración mayor a 5 años
	inicio2 := now
	fin2 := now.AddDate(entity.VigenciaMaximaAnios, 0, 1)
	_, err = uc.Create(empresaTest, dto.CreateRolRequest{
		Nombre: "Eterno", FechaInicio: &inicio2, FechaFin: &fin2,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de borrado y asignaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRolDelete_BloqueadoPorAsignaciones(t *testing.T) {
	uc, _, _, _ := newRolUC()
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)

	_, err = uc.AsignarUsuario(empresaTest, rol.ID, dto.AsignarRolRequest{UsuarioID: "u-1"})
	require.NoError(t, err)

	err = uc.Delete(empresaTest, rol.ID)
	require.ErrorIs(t, err, domain.ErrRolEnUso)
	assert.Contains(t, err.Error(), "1 asignaciones activas")
}

func TestRolDelete_OKTrasFinalizarAsignacion(t *testing.T) {
	uc, _, _, _ := newRolUC()
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)
	a, err := uc.AsignarUsuario(empresaTest, rol.ID, dto.AsignarRolRequest{UsuarioID: "u-1"})
	require.NoError(t, err)

	require.NoError(t, uc.FinalizarAsignacion(empresaTest, a.ID))
	assert.NoError(t, uc.Delete(empresaTest, rol.ID))
}

func TestRolDelete_OtraEmpresaNoLoVe(t *testing.T) {
	uc, _, _, _ := newRolUC()
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)

	err = uc.Delete("empresa-ajena", rol.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAsignarUsuario_VentanaInvalida(t *testing.T) {
	uc, _, _, _ := newRolUC()
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Vendedor"})
	require.NoError(t, err)

	inicio := time.Now()
	fin := inicio.Add(-time.Hour)
	_, err = uc.AsignarUsuario(empresaTest, rol.ID, dto.AsignarRolRequest{
		UsuarioID: "u-1", FechaInicio: &inicio, FechaFin: &fin,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de permisos de rol (snapshot del catálogo)
// ──────────────────────────────────────────────────────────────────────────────

func TestAsignarPermiso_SnapshotYDuplicado(t *testing.T) {
	uc, _, permisos, _ := newRolUC()
	permisos.catalogo = []*entity.Permiso{
		{ID: "p-1", Recurso: "factura", Accion: "leer"},
	}
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Lector"})
	require.NoError(t, err)

	asignado, err := uc.AsignarPermiso(empresaTest, rol.ID, dto.AsignarPermisoRequest{PermisoID: "p-1"})
	require.NoError(t, err)
	assert.Equal(t, "factura", asignado.Recurso)
	assert.Equal(t, "leer", asignado.Accion)

	// asignar dos veces el mismo permiso es conflicto
	_, err = uc.AsignarPermiso(empresaTest, rol.ID, dto.AsignarPermisoRequest{PermisoID: "p-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAsignarPermiso_PermisoInexistente(t *testing.T) {
	uc, _, _, _ := newRolUC()
	rol, err := uc.Create(empresaTest, dto.CreateRolRequest{Nombre: "Lector"})
	require.NoError(t, err)

	_, err = uc.AsignarPermiso(empresaTest, rol.ID, dto.AsignarPermisoRequest{PermisoID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de permisos directos de usuario
// ──────────────────────────────────────────────────────────────────────────────

func TestGrantDirecto_OKyListado(t *testing.T) {
	uc, _, permisos, _ := newRolUC()
	permisos.catalogo = []*entity.Permiso{
		{ID: "p-1", Recurso: "factura", Accion: "leer"},
	}

	otorgado, err := uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{
		Recurso: "factura", Accion: "leer",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", otorgado.UsuarioID)
	assert.Equal(t, "factura", otorgado.Recurso)

	lista, err := uc.ListDirectos(empresaTest, "u-1")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "leer", lista[0].Accion)
}

func TestGrantDirecto_DuplicadoYFueraDeCatalogo(t *testing.T) {
	uc, _, permisos, _ := newRolUC()
	permisos.catalogo = []*entity.Permiso{
		{ID: "p-1", Recurso: "factura", Accion: "leer"},
	}

	_, err := uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{Recurso: "factura", Accion: "leer"})
	require.NoError(t, err)

	_, err = uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{Recurso: "factura", Accion: "leer"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// (recurso, acción) que no existe en el catálogo
	_, err = uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{Recurso: "factura", Accion: "volar"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRevokeDirecto_QuitaSoloElIndicado(t *testing.T) {
	uc, _, permisos, _ := newRolUC()
	permisos.catalogo = []*entity.Permiso{
		{ID: "p-1", Recurso: "factura", Accion: "leer"},
		{ID: "p-2", Recurso: "factura", Accion: "crear"},
	}
	_, err := uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{Recurso: "factura", Accion: "leer"})
	require.NoError(t, err)
	_, err = uc.GrantDirecto(empresaTest, "u-1", dto.PermisoDirectoRequest{Recurso: "factura", Accion: "crear"})
	require.NoError(t, err)

	require.NoError(t, uc.RevokeDirecto(empresaTest, "u-1", "factura", "leer"))

	lista, err := uc.ListDirectos(empresaTest, "u-1")
	require.NoError(t, err)
	require.Len(t, lista, 1)
	assert.Equal(t, "crear", lista[0].Accion)
}

func TestRevokeDirecto_ParametrosVacios(t *testing.T) {
	uc, _, _, _ := newRolUC()

	err := uc.RevokeDirecto(empresaTest, "u-1", "", "leer")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListCatalogo(t *testing.T) {
	uc, _, permisos, _ := newRolUC()
	permisos.catalogo = []*entity.Permiso{
		{ID: "p-1", Recurso: "factura", Accion: "leer", Descripcion: "Ver facturas"},
		{ID: "p-2", Recurso: "rol", Accion: "crear"},
	}

	catalogo, err := uc.ListCatalogo()
	require.NoError(t, err)
	require.Len(t, catalogo, 2)
	assert.Equal(t, "Ver facturas", catalogo[0].Descripcion)
}
