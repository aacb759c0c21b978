package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/gestium/gestium-api/internal/application/audit"
	"github.com/gestium/gestium-api/internal/application/auth"
	"github.com/gestium/gestium-api/internal/application/authz"
	"github.com/gestium/gestium-api/internal/application/sales"
	"github.com/gestium/gestium-api/internal/application/usecase"
	"github.com/gestium/gestium-api/internal/infrastructure/export"
	"github.com/gestium/gestium-api/internal/infrastructure/postgres"
	httpRouter "github.com/gestium/gestium-api/internal/interfaces/http"
	"github.com/gestium/gestium-api/pkg/config"
	"github.com/gestium/gestium-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	empresaRepo := postgres.NewEmpresaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	clienteRepo := postgres.NewClienteRepository(pool)
	rolRepo := postgres.NewRolRepository(pool)
	permisoRepo := postgres.NewPermisoRepository(pool)
	asignacionRepo := postgres.NewAsignacionRepository(pool)
	cotizacionRepo := postgres.NewCotizacionRepository(pool)
	ordenRepo := postgres.NewOrdenVentaRepository(pool)
	facturaRepo := postgres.NewFacturaRepository(pool)
	notaRepo := postgres.NewNotaRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	archivoRepo := postgres.NewArchivoRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(usuarioRepo, empresaRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	empresaUC := usecase.NewEmpresaUseCase(empresaRepo)
	clienteUC := usecase.NewClienteUseCase(clienteRepo)
	rolUC := usecase.NewRolUseCase(rolRepo, permisoRepo, asignacionRepo, log)
	resolver := authz.NewResolver(permisoRepo, rolRepo, asignacionRepo)

	cotizacionUC := sales.NewCotizacionUseCase(txRunner, cotizacionRepo, clienteRepo)
	ordenUC := sales.NewOrdenUseCase(txRunner, ordenRepo, cotizacionRepo, clienteRepo)
	facturaUC := sales.NewFacturaUseCase(txRunner, facturaRepo, notaRepo)

	limiter := audit.NewRateLimiter(cfg.Audit.RatePerMinute)
	recorder := audit.NewRecorder(auditoriaRepo, limiter, log)
	auditQuery := audit.NewQueryUseCase(auditoriaRepo, map[string]audit.Exporter{
		"xlsx": export.NewXLSXExporter(),
		"csv":  export.NewCSVExporter(),
		"pdf":  export.NewPDFExporter(),
	})
	archivoUC := usecase.NewArchivoUseCase(archivoRepo)

	// Purga diaria del historial de auditoría (los CRITICAL quedan exentos).
	purgeDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := recorder.Purge(cfg.Audit.RetentionDays)
				if err != nil {
					log.Error().Err(err).Msg("purga de auditoría")
					continue
				}
				log.Info().Int64("eliminados", n).Msg("purga de auditoría completada")
			case <-purgeDone:
				return
			}
		}
	}()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		EmpresaUC:    empresaUC,
		ClienteUC:    clienteUC,
		RolUC:        rolUC,
		Resolver:     resolver,
		CotizacionUC: cotizacionUC,
		OrdenUC:      ordenUC,
		FacturaUC:    facturaUC,
		Recorder:     recorder,
		AuditQuery:   auditQuery,
		ArchivoUC:    archivoUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	close(purgeDone)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
