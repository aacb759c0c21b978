package usecase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestium/gestium-api/internal/application/dto"
	"github.com/gestium/gestium-api/internal/application/usecase"
	"github.com/gestium/gestium-api/internal/domain"
	"github.com/gestium/gestium-api/internal/domain/entity"
)

// RUC real válido (dígito verificador correcto).
const rucValido = "20100070970"

type memEmpresaRepo struct {
	empresas map[string]*entity.Empresa
	configs  map[string]*entity.EmpresaConfig
	falloRUC error // si se setea, GetByRUC devuelve este error
}

func newMemEmpresaRepo() *memEmpresaRepo {
	return &memEmpresaRepo{
		empresas: map[string]*entity.Empresa{},
		configs:  map[string]*entity.EmpresaConfig{},
	}
}

func (m *memEmpresaRepo) Create(e *entity.Empresa) error { m.empresas[e.ID] = e; return nil }
func (m *memEmpresaRepo) GetByID(id string) (*entity.Empresa, error) { return m.empresas[id], nil }

func (m *memEmpresaRepo) GetByRUC(ruc string) (*entity.Empresa, error) {
	if m.falloRUC != nil {
		return nil, m.falloRUC
	}
	for _, e := range m.empresas {
		if e.RUC == ruc {
			return e, nil
		}
	}
	return nil, nil
}

func (m *memEmpresaRepo) Update(e *entity.Empresa) error { m.empresas[e.ID] = e; return nil }

func (m *memEmpresaRepo) List(limit, offset int) ([]*entity.Empresa, error) {
	var out []*entity.Empresa
	for _, e := range m.empresas {
		out = append(out, e)
	}
	return out, nil
}

func (m *memEmpresaRepo) Count() (int, error) { return len(m.empresas), nil }
func (m *memEmpresaRepo) Delete(id string) error {
	delete(m.empresas, id)
	return nil
}

func (m *memEmpresaRepo) GetConfig(empresaID string) (*entity.EmpresaConfig, error) {
	return m.configs[empresaID], nil
}

func (m *memEmpresaRepo) SaveConfig(cfg *entity.EmpresaConfig) error {
	m.configs[cfg.EmpresaID] = cfg
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────

func TestEmpresaCreate_ConfigPorDefecto(t *testing.T) {
	repo := newMemEmpresaRepo()
	uc := usecase.NewEmpresaUseCase(repo)

	e, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: rucValido})
	require.NoError(t, err)
	assert.Equal(t, entity.TipoEmpresaSAC, e.Tipo)
	assert.Equal(t, "active", e.Estado)

	cfg, err := uc.GetConfig(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "PEN", cfg.Moneda)
	assert.Equal(t, "18.00", cfg.TasaIGV)
	assert.Equal(t, "America/Lima", cfg.ZonaHoraria)
}

func TestEmpresaCreate_RUCInvalido(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(newMemEmpresaRepo())

	// dígito verificador alterado
	_, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: "20100070971"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEmpresaCreate_RUCDuplicado(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(newMemEmpresaRepo())

	_, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: rucValido})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateEmpresaRequest{RazonSocial: "Otra SAC", RUC: rucValido})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Un fallo del repositorio al verificar el RUC debe propagarse, no tratarse
// como "no existe".
func TestEmpresaCreate_FalloConsultaRUC(t *testing.T) {
	repo := newMemEmpresaRepo()
	repo.falloRUC = errors.New("conexión perdida")
	uc := usecase.NewEmpresaUseCase(repo)

	_, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: rucValido})
	assert.ErrorContains(t, err, "conexión perdida")
}

func TestEmpresaGetByID_NoExiste(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(newMemEmpresaRepo())

	e, err := uc.GetByID("no-existe")
	assert.Nil(t, e)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmpresaUpdate_CamposParciales(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(newMemEmpresaRepo())
	e, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: rucValido})
	require.NoError(t, err)

	nueva := "ACME Corporación SAC"
	actualizada, err := uc.Update(e.ID, dto.UpdateEmpresaRequest{RazonSocial: &nueva})
	require.NoError(t, err)
	assert.Equal(t, nueva, actualizada.RazonSocial)
	assert.Equal(t, rucValido, actualizada.RUC, "el RUC no cambia en un update")

	vacia := ""
	_, err = uc.Update(e.ID, dto.UpdateEmpresaRequest{RazonSocial: &vacia})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update("no-existe", dto.UpdateEmpresaRequest{RazonSocial: &nueva})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEmpresaUpdateConfig(t *testing.T) {
	uc := usecase.NewEmpresaUseCase(newMemEmpresaRepo())
	e, err := uc.Create(dto.CreateEmpresaRequest{RazonSocial: "ACME SAC", RUC: rucValido})
	require.NoError(t, err)

	moneda := "USD"
	cfg, err := uc.UpdateConfig(e.ID, dto.UpdateEmpresaConfigRequest{Moneda: &moneda})
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Moneda)
	assert.Equal(t, "18.00", cfg.TasaIGV, "los campos no enviados se conservan")

	_, err = uc.UpdateConfig("no-existe", dto.UpdateEmpresaConfigRequest{Moneda: &moneda})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
