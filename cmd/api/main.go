package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/stockcard-api/internal/application/analytics"
	"github.com/jhoicas/stockcard-api/internal/application/auth"
	"github.com/jhoicas/stockcard-api/internal/application/inventory"
	"github.com/jhoicas/stockcard-api/internal/application/usecase"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/stockcard-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockcard-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stockcard-api/internal/interfaces/http"
	"github.com/jhoicas/stockcard-api/pkg/config"
	"github.com/jhoicas/stockcard-api/pkg/logger"
	"github.com/jhoicas/stockcard-api/pkg/metrics"
	"github.com/jhoicas/stockcard-api/pkg/migrate"
)

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
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.DB, log.Named("db"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a base de datos")
	}
	defer store.Close()

	if err := migrate.MaybeRun(ctx, cfg.DB, log.Named("migrate"), store.SQL); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	authUC := auth.NewAuthUseCase(store.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	stockCardUC := usecase.NewStockCardUseCase(store.Cards)
	movementUC := inventory.NewMovementUseCase(store.Tx, store.Movements)

	// Exportaciones del reporte: Excel y PDF con códigos de barras
	realTimeUC := analytics.NewRealTimeStockUseCase(
		store.RealTime,
		export.NewExcelReportGenerator(),
		infrapdf.NewMarotoPDFGenerator(true),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerFile != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerFile,
				Path:     "docs",
				Title:    "Stock Card API",
			}))
		} else {
			log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
		}
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := store.SQL.PingContext(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "down", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	var (
		httpMetrics  *metrics.HTTPMetrics
		stockMetrics *metrics.StockMetrics
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		httpMetrics = metrics.NewHTTPMetrics(reg)
		stockMetrics = metrics.NewStockMetrics(reg)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		StockCardUC:  stockCardUC,
		MovementUC:   movementUC,
		RealTimeUC:   realTimeUC,
		JWTSecret:    cfg.JWT.Secret,
		Logger:       log,
		HTTPMetrics:  httpMetrics,
		StockMetrics: stockMetrics,
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
