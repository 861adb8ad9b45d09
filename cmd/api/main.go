package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/registro-clientes/docs"
	"github.com/jhoicas/registro-clientes/internal/application/usecase"
	"github.com/jhoicas/registro-clientes/internal/domain/registry"
	"github.com/jhoicas/registro-clientes/internal/infrastructure/auditlog"
	"github.com/jhoicas/registro-clientes/internal/infrastructure/metrics"
	"github.com/jhoicas/registro-clientes/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/registro-clientes/internal/interfaces/http"
	"github.com/jhoicas/registro-clientes/pkg/config"
	"github.com/jhoicas/registro-clientes/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("audit_log", cfg.Audit.FilePath).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es requerido")
	}

	auditLog := auditlog.New(auditlog.Config{
		Path:  cfg.Audit.FilePath,
		Actor: cfg.Audit.DefaultActor,
	}, log)
	reg := registry.New()
	m := metrics.New()

	auditor := usecase.NewAuditor(auditLog, log, m)
	customerUC := usecase.NewCustomerUseCase(reg, auditor, m)
	auditUC := usecase.NewAuditUseCase(auditLog, auditor)

	// Carga inicial desde PostgreSQL (opcional).
	if cfg.DB.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			cancel()
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		loaded, err := customerUC.Seed(ctx, postgres.NewCustomerRepository(pool))
		pool.Close()
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("carga inicial de clientes")
		}
		log.Info().Int("clientes", loaded).Msg("carga inicial completada")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "customers": reg.Count()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Get("/docs/doc.json", docs.DocJSON)
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(docs.UI(swaggerFile, cfg.App.Name+" API"))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, UI deshabilitada")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		CustomerUC: customerUC,
		AuditUC:    auditUC,
		JWTSecret:  cfg.JWT.Secret,
		ExportDir:  cfg.Audit.ExportDir,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
