package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

// memArchivoRepo implementa el puerto de archivos en memoria.
type memArchivoRepo struct {
	archivos  map[string]*entity.Archivo
	versiones map[string][]*entity.ArchivoVersion
}

func newMemArchivoRepo() *memArchivoRepo {
	return &memArchivoRepo{
		archivos:  map[string]*entity.Archivo{},
		versiones: map[string][]*entity.ArchivoVersion{},
	}
}

func (m *memArchivoRepo) Create(a *entity.Archivo) error {
	m.archivos[a.ID] = a
	return nil
}

func (m *memArchivoRepo) GetByID(id string) (*entity.Archivo, error) { return m.archivos[id], nil }

func (m *memArchivoRepo) ListByEmpresa(empresaID string, soloActivos bool, limit, offset int) ([]*entity.Archivo, error) {
	var out []*entity.Archivo
	for _, a := range m.archivos {
		if a.EmpresaID != empresaID || (soloActivos && !a.Activo) {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (m *memArchivoRepo) CountByEmpresa(empresaID string, soloActivos bool) (int, error) {
	list, _ := m.ListByEmpresa(empresaID, soloActivos, 0, 0)
	return len(list), nil
}

func (m *memArchivoRepo) Update(a *entity.Archivo) error {
	m.archivos[a.ID] = a
	return nil
}

func (m *memArchivoRepo) IncrementarDescargas(id string) error {
	if a := m.archivos[id]; a != nil {
		a.Descargas++
	}
	return nil
}

func (m *memArchivoRepo) CreateVersion(v *entity.ArchivoVersion) error {
	m.versiones[v.ArchivoID] = append(m.versiones[v.ArchivoID], v)
	return nil
}

func (m *memArchivoRepo) ListVersiones(archivoID string) ([]*entity.ArchivoVersion, error) {
	return m.versiones[archivoID], nil
}

func (m *memArchivoRepo) UltimaVersion(archivoID string) (int, error) {
	max := 0
	for _, v := range m.versiones[archivoID] {
		if v.Numero > max {
			max = v.Numero
		}
	}
	return max, nil
}

func crearArchivo(t *testing.T, uc *usecase.ArchivoUseCase) *dto.ArchivoResponse {
	t.Helper()
	a, err := uc.Create(empresaTest, dto.CreateArchivoRequest{
		Nombre: "contrato.pdf", MimeType: "application/pdf", Tamano: 2048,
		EntidadTipo: "factura", EntidadID: "f-1",
	})
	require.NoError(t, err)
	return a
}

// ──────────────────────────────────────────────────────────────────────────────

func TestArchivoCreate_PrimeraVersionImplicita(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)

	a := crearArchivo(t, uc)
	versiones, err := uc.ListVersiones(empresaTest, a.ID)
	require.NoError(t, err)
	require.Len(t, versiones, 1)
	assert.Equal(t, 1, versiones[0].Numero)
	assert.Equal(t, "contrato.pdf", versiones[0].Nombre)
}

func TestArchivoCreate_Invalido(t *testing.T) {
	uc := usecase.NewArchivoUseCase(newMemArchivoRepo())

	_, err := uc.Create(empresaTest, dto.CreateArchivoRequest{Nombre: "x", MimeType: "text/plain", Tamano: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(empresaTest, dto.CreateArchivoRequest{MimeType: "text/plain", Tamano: 10})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestArchivoAddVersion_ActualizaMetadatos(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)

	v, err := uc.AddVersion(empresaTest, a.ID, dto.CreateVersionRequest{Nombre: "contrato-v2.pdf", Tamano: 4096})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Numero)
	assert.Equal(t, "contrato-v2.pdf", repo.archivos[a.ID].Nombre)
	assert.Equal(t, int64(4096), repo.archivos[a.ID].Tamano)
}

func TestArchivoAddVersion_LimiteDeVersiones(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)

	// la creación deja la versión 1; completar hasta el tope
	for i := 2; i <= entity.MaxVersionesPorArchivo; i++ {
		_, err := uc.AddVersion(empresaTest, a.ID, dto.CreateVersionRequest{Nombre: "v.pdf", Tamano: 1})
		require.NoError(t, err)
	}

	_, err := uc.AddVersion(empresaTest, a.ID, dto.CreateVersionRequest{Nombre: "v.pdf", Tamano: 1})
	assert.ErrorIs(t, err, domain.ErrLimiteVersiones)
}

func TestArchivoAddVersion_InactivoEsConflicto(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)
	require.NoError(t, uc.Delete(empresaTest, a.ID))

	_, err := uc.AddVersion(empresaTest, a.ID, dto.CreateVersionRequest{Nombre: "v.pdf", Tamano: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestArchivoDelete_IdempotenteYLogico(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)

	require.NoError(t, uc.Delete(empresaTest, a.ID))
	assert.False(t, repo.archivos[a.ID].Activo, "baja lógica, la fila permanece")
	assert.NoError(t, uc.Delete(empresaTest, a.ID), "borrar dos veces no es error")

	err := uc.Delete("empresa-ajena", a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestArchivoGetByID_CuentaDescargas(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)

	resp, err := uc.GetByID(empresaTest, a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Descargas)
	assert.Equal(t, int64(1), repo.archivos[a.ID].Descargas)
}

func TestArchivoList_InactivosOpcionales(t *testing.T) {
	repo := newMemArchivoRepo()
	uc := usecase.NewArchivoUseCase(repo)
	a := crearArchivo(t, uc)
	b, err := uc.Create(empresaTest, dto.CreateArchivoRequest{Nombre: "foto.png", MimeType: "image/png", Tamano: 100})
	require.NoError(t, err)
	require.NoError(t, uc.Delete(empresaTest, b.ID))

	activos, err := uc.List(empresaTest, false, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, activos.Data, 1)
	assert.Equal(t, a.ID, activos.Data[0].ID)

	todos, err := uc.List(empresaTest, true, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, todos.Data, 2)
	assert.Equal(t, 2, todos.Meta.Total)
}
