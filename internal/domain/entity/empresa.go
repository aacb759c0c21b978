package entity

import "time"

// Empresa representa una organización/tenant del sistema (multi-tenant, enfoque Perú).
type Empresa struct {
	ID          string
	RazonSocial string
	RUC         string // RUC peruano, 11 dígitos con dígito verificador
	Tipo        string // ver constantes TipoEmpresa*
	Direccion   string
	Telefono    string
	Email       string
	Estado      string // active, suspended, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Tipos de empresa soportados.
const (
	TipoEmpresaSAC  = "SAC"
	TipoEmpresaSA   = "SA"
	TipoEmpresaEIRL = "EIRL"
	TipoEmpresaSRL  = "SRL"
)

// EmpresaConfig agrupa la configuración regional y tributaria de una empresa.
type EmpresaConfig struct {
	ID            string
	EmpresaID     string
	Moneda        string // PEN, USD
	TasaIGV       string // tasa por defecto como porcentaje ("18.00"); las etapas de venta usan su propia tasa
	ZonaHoraria   string // America/Lima
	FormatoFecha  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
