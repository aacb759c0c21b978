package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/application/auth"
	"github.com/gestium/gestium-api/internal/application/authz"
	"github.com/gestium/gestium-api/internal/application/sales"
	"github.com/gestium/gestium-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	EmpresaUC    *usecase.EmpresaUseCase
	ClienteUC    *usecase.ClienteUseCase
	RolUC        *usecase.RolUseCase
	Resolver     *authz.Resolver
	CotizacionUC *sales.CotizacionUseCase
	OrdenUC      *sales.OrdenUseCase
	FacturaUC    *sales.FacturaUseCase
	Recorder     *audit.Recorder
	AuditQuery   *audit.QueryUseCase
	ArchivoUC    *usecase.ArchivoUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Registro de empresas: el alta es pública (onboarding); el resto protegido.
	empresaHandler := NewEmpresaHandler(deps.EmpresaUC)
	api.Post("/empresas", empresaHandler.Create)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Empresas (protegido)
	empresas := protected.Group("/empresas")
	empresas.Get("/", empresaHandler.List)
	empresas.Get("/:id", empresaHandler.GetByID)
	empresas.Put("/:id", RequireEmpresaPropia(), RequirePermission("empresa", "editar", deps.Resolver), empresaHandler.Update)
	empresas.Get("/:id/configuracion", RequireEmpresaPropia(), empresaHandler.GetConfig)
	empresas.Patch("/:id/configuracion", RequireEmpresaPropia(), RequirePermission("empresa", "editar", deps.Resolver), empresaHandler.UpdateConfig)

	// Roles, permisos y asignaciones (protegido, requiere permiso sobre "rol")
	rolHandler := NewRolHandler(deps.RolUC)
	empresas.Post("/:id/roles", RequireEmpresaPropia(), RequirePermission("rol", "crear", deps.Resolver), rolHandler.Create)
	empresas.Get("/:id/roles", RequireEmpresaPropia(), RequirePermission("rol", "leer", deps.Resolver), rolHandler.List)

	roles := protected.Group("/roles", RequirePermission("rol", "leer", deps.Resolver))
	roles.Get("/:id", rolHandler.GetByID)
	roles.Put("/:id", RequirePermission("rol", "editar", deps.Resolver), rolHandler.Update)
	roles.Delete("/:id", RequirePermission("rol", "eliminar", deps.Resolver), rolHandler.Delete)
	roles.Get("/:id/permisos", rolHandler.ListPermisos)
	roles.Post("/:id/permisos", RequirePermission("rol", "editar", deps.Resolver), rolHandler.AsignarPermiso)
	roles.Delete("/:id/permisos/:permisoId", RequirePermission("rol", "editar", deps.Resolver), rolHandler.RevocarPermiso)
	roles.Get("/:id/asignaciones", rolHandler.ListAsignaciones)
	roles.Post("/:id/asignaciones", RequirePermission("rol", "editar", deps.Resolver), rolHandler.AsignarUsuario)
	protected.Delete("/asignaciones/:id", RequirePermission("rol", "editar", deps.Resolver), rolHandler.FinalizarAsignacion)

	// Catálogo de permisos y permisos directos de usuario
	protected.Get("/permisos", RequirePermission("rol", "leer", deps.Resolver), rolHandler.ListCatalogo)
	usuarios := protected.Group("/usuarios")
	usuarios.Get("/:id/permisos", RequirePermission("rol", "leer", deps.Resolver), rolHandler.ListDirectos)
	usuarios.Post("/:id/permisos", RequirePermission("rol", "editar", deps.Resolver), rolHandler.GrantDirecto)
	usuarios.Delete("/:id/permisos", RequirePermission("rol", "editar", deps.Resolver), rolHandler.RevokeDirecto)

	// Clientes (protegido)
	clientes := protected.Group("/clientes")
	clienteHandler := NewClienteHandler(deps.ClienteUC)
	clientes.Post("/", clienteHandler.Create)
	clientes.Get("/", clienteHandler.List)

	// Cotizaciones (protegido)
	cotizaciones := protected.Group("/cotizaciones")
	cotizacionHandler := NewCotizacionHandler(deps.CotizacionUC, deps.OrdenUC)
	cotizaciones.Post("/", cotizacionHandler.Create)
	cotizaciones.Get("/", cotizacionHandler.List)
	cotizaciones.Get("/:id", cotizacionHandler.GetByID)
	cotizaciones.Put("/:id", cotizacionHandler.Update)
	cotizaciones.Delete("/:id", cotizacionHandler.Delete)
	cotizaciones.Post("/:id/aprobar", cotizacionHandler.Aprobar)
	cotizaciones.Post("/:id/anular", cotizacionHandler.Anular)
	cotizaciones.Post("/:id/orden", cotizacionHandler.GenerarOrden)

	// Órdenes de venta (protegido)
	ordenes := protected.Group("/ordenes")
	ordenHandler := NewOrdenHandler(deps.OrdenUC)
	ordenes.Post("/", ordenHandler.Create)
	ordenes.Get("/", ordenHandler.List)
	ordenes.Get("/:id", ordenHandler.GetByID)
	ordenes.Post("/:id/aprobar", ordenHandler.Aprobar)
	ordenes.Post("/:id/anular", ordenHandler.Anular)
	ordenes.Post("/:id/facturar", ordenHandler.Facturar)

	// Facturas y notas (protegido)
	facturas := protected.Group("/facturas")
	facturaHandler := NewFacturaHandler(deps.FacturaUC)
	facturas.Get("/", facturaHandler.List)
	facturas.Get("/:id", facturaHandler.GetByID)
	facturas.Post("/:id/pagar", facturaHandler.Pagar)
	facturas.Post("/:id/anular", facturaHandler.Anular)
	facturas.Post("/:id/notas", facturaHandler.CrearNota)
	facturas.Get("/:id/notas", facturaHandler.ListNotas)

	// Auditoría (protegido; la exportación exige el permiso "exportar")
	auditoria := protected.Group("/auditoria")
	auditoriaHandler := NewAuditoriaHandler(deps.Recorder, deps.AuditQuery)
	auditoria.Post("/", auditoriaHandler.Registrar)
	auditoria.Get("/", RequirePermission("auditoria", "leer", deps.Resolver), auditoriaHandler.List)
	auditoria.Get("/exportar", RequirePermission("auditoria", "exportar", deps.Resolver), auditoriaHandler.Exportar)
	auditoria.Get("/:id", RequirePermission("auditoria", "leer", deps.Resolver), auditoriaHandler.GetByID)

	// Archivos (protegido)
	archivos := protected.Group("/archivos")
	archivoHandler := NewArchivoHandler(deps.ArchivoUC)
	archivos.Post("/", archivoHandler.Create)
	archivos.Get("/", archivoHandler.List)
	archivos.Get("/:id", archivoHandler.GetByID)
	archivos.Delete("/:id", archivoHandler.Delete)
	archivos.Post("/:id/versiones", archivoHandler.AddVersion)
	archivos.Get("/:id/versiones", archivoHandler.ListVersiones)
}
