package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"netlister/docs"
	"netlister/internal/config"
	"netlister/internal/database"
	"netlister/internal/database/migration"
	handlers "netlister/internal/http/handler"
	"netlister/internal/http/middleware"
	"netlister/internal/logging"
	"netlister/internal/otel"
	"netlister/internal/repository/postgres"
	"netlister/internal/service"
	"netlister/internal/storage"
)

const (
	// bodyLimit caps uploaded netlist documents.
	bodyLimit       = 16 << 20
	shutdownTimeout = 10 * time.Second
)

// @title Netlist API
// @version 1.0
// @description Stores validated circuit netlists and their archived source documents.
// @BasePath /
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, logger *zap.Logger) error {
	shutdownTracing, err := otel.Init(ctx, logger)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			logger.Warn("tracing shutdown failed", zap.Error(err))
		}
	}()

	db, err := database.NewPostgres(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, logger, cfg.Database.Host); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, logger)
	if err != nil {
		return fmt.Errorf("init object storage: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		return fmt.Errorf("register service metrics: %w", err)
	}
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register http metrics: %w", err)
	}

	repo := postgres.NewNetlistPostgres(db)
	svc := service.NewNetlistService(objStore, repo, logger, metrics)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             bodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logger))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	handlers.RegisterRoutes(app, db, svc)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server listening", zap.String("addr", addr), zap.String("app_host", cfg.AppHost))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(sctx)
	})

	return g.Wait()
}
