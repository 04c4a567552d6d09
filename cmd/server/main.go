package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apprealestate "github.com/inmobiliaria/backend/internal/application/realestate"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/inmobiliaria/backend/internal/infrastructure/cache"
	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"github.com/inmobiliaria/backend/internal/infrastructure/logger"
	"github.com/inmobiliaria/backend/internal/infrastructure/migration"
	"github.com/inmobiliaria/backend/internal/infrastructure/persistence"
	"github.com/inmobiliaria/backend/internal/infrastructure/storage"
	"github.com/inmobiliaria/backend/internal/infrastructure/telemetry"
	"github.com/inmobiliaria/backend/internal/interfaces/http/handler"
	"github.com/inmobiliaria/backend/internal/interfaces/http/middleware"
	"github.com/inmobiliaria/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, syncLog, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer syncLog()

	log.Info("Starting inmobiliaria backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("db_driver", cfg.Database.Driver),
	)

	if err := run(cfg, log); err != nil {
		log.Error("Server stopped with error", zap.Error(err))
		syncLog()
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	// Telemetry providers come first so the DB plugin and the HTTP middleware see them
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to flush metrics", zap.Error(err))
		}
	}()

	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := lp.Shutdown(shutdownCtx); err != nil {
			log.Warn("Failed to flush exported logs", zap.Error(err))
		}
	}()
	log = lp.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Warn("Failed to stop profiler", zap.Error(err))
		}
	}()
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Telemetry.DBSlowQueryThresh),
		logger.WithIgnoreRecordNotFoundError(true),
	)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("Failed to close database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.Driver))

	if err := prepareSchema(db, log); err != nil {
		return err
	}

	if tp.IsEnabled() {
		plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfigFrom(cfg.Telemetry, db.Driver), log).
			WithTracerProvider(tp.Provider())
		if err := plugin.Register(db.DB); err != nil {
			return err
		}
	}

	var metrics *telemetry.Metrics
	var salesMetrics apprealestate.SalesMetrics = apprealestate.NopSalesMetrics{}
	if cfg.Metrics.Enabled {
		metrics = telemetry.NewMetrics(cfg.Metrics.Namespace)
		salesMetrics = metrics
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		if err := metrics.RegisterDBStats(sqlDB, cfg.Database.DBName); err != nil {
			log.Warn("Failed to register connection pool metrics", zap.Error(err))
		}
	}

	var idempotency shared.IdempotencyStore
	if cfg.Idempotency.Enabled {
		idempotency, err = cache.NewIdempotencyStoreFactory(cfg.Idempotency, cfg.Redis,
			cache.WithLogger(log),
		).CreateStore(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if err := idempotency.Close(); err != nil {
				log.Warn("Failed to close idempotency store", zap.Error(err))
			}
		}()
	}

	reportStorage, err := storage.NewReportStorage(ctx, &cfg.Storage, log)
	if err != nil {
		return err
	}
	reportsDir := ""
	if local, ok := reportStorage.(*storage.LocalReportStorage); ok {
		reportsDir = local.Dir()
	}

	// Application services
	uow := persistence.NewGormUnitOfWork(db.DB)
	queries := apprealestate.NewQueryService(
		persistence.NewGormAgentRepository(db.DB),
		persistence.NewGormClientRepository(db.DB),
		persistence.NewGormLotRepository(db.DB),
		persistence.NewGormSaleRepository(db.DB),
	)
	agentService := apprealestate.NewAgentService(uow, log)
	clientService := apprealestate.NewClientService(uow, log)
	lotService := apprealestate.NewLotService(uow, log)
	coordinator := apprealestate.NewSalesTransactionCoordinator(uow, salesMetrics, log)
	reports := apprealestate.NewReportService(queries, reportStorage, cfg.Storage.URLExpiration, log)

	var limiter *middleware.RateLimiter
	if cfg.HTTP.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
	}

	engine := router.NewEngine(router.EngineConfig{
		HTTP:             cfg.HTTP,
		ServiceName:      cfg.Telemetry.ServiceName,
		TracingEnabled:   tp.IsEnabled(),
		ProfilingEnabled: profiler.IsEnabled(),
		Metrics:          metrics,
		MetricsPath:      cfg.Metrics.Path,
		Idempotency:      idempotency,
		IdempotencyTTL:   cfg.Idempotency.TTL,
		RateLimiter:      limiter,
		ReportsDir:       reportsDir,
		Logger:           log,
	}, router.Handlers{
		Agents:  handler.NewAgentHandler(agentService, queries),
		Clients: handler.NewClientHandler(clientService, queries),
		Lots:    handler.NewLotHandler(lotService, queries),
		Sales:   handler.NewSaleHandler(coordinator, queries),
		Reports: handler.NewReportHandler(queries, reports),
	}, handler.NewHealthHandler(db, version))

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Info("Shutting down server...", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-serveErr
}

// prepareSchema builds the sqlite schema from the models and applies the
// embedded SQL migrations on postgres
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver == "sqlite" {
		log.Info("Creating schema from models")
		return db.AutoMigrate()
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	// The migrator is not closed: closing it closes the shared pool
	m, err := migration.New(sqlDB, "", log)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil {
		return err
	}
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	log.Info("Schema ready", zap.Uint("version", v), zap.Bool("dirty", dirty))
	return nil
}
