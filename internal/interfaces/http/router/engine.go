package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inmobiliaria/backend/internal/domain/shared"
	"github.com/inmobiliaria/backend/internal/infrastructure/config"
	"github.com/inmobiliaria/backend/internal/infrastructure/logger"
	"github.com/inmobiliaria/backend/internal/infrastructure/storage"
	"github.com/inmobiliaria/backend/internal/infrastructure/telemetry"
	"github.com/inmobiliaria/backend/internal/interfaces/http/handler"
	"github.com/inmobiliaria/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// HealthPath is served outside the API prefix
const HealthPath = "/health"

// EngineConfig carries what the engine needs besides the handlers. Nil
// collaborators switch their feature off.
type EngineConfig struct {
	HTTP             config.HTTPConfig
	ServiceName      string
	TracingEnabled   bool
	ProfilingEnabled bool
	Metrics          *telemetry.Metrics
	MetricsPath      string
	Idempotency      shared.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter

	// ReportsDir is served under storage.LocalFilesPath when reports are
	// stored on the local filesystem
	ReportsDir string
	Logger     *zap.Logger
}

// NewEngine builds the gin engine with the middleware chain, the /api/v1
// resource routes, /health and, when metrics are on, the scrape endpoint
func NewEngine(cfg EngineConfig, handlers Handlers, health *handler.HealthHandler) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	quiet := []string{HealthPath, metricsPath}

	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled, quiet...),
		middleware.Profiling(cfg.ProfilingEnabled, quiet...),
		middleware.RequestID(),
		logger.GinMiddleware(log, quiet...),
		logger.Recovery(log),
		middleware.Metrics(cfg.Metrics, quiet...),
		middleware.Secure(middleware.DefaultSecurityConfig()),
		middleware.CORS(middleware.CORSConfigFrom(cfg.HTTP)),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)
	if cfg.RateLimiter != nil {
		engine.Use(middleware.RateLimit(cfg.RateLimiter))
	}

	if health != nil {
		engine.GET(HealthPath, health.Check)
	}
	if cfg.Metrics != nil {
		engine.GET(metricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.ReportsDir != "" {
		engine.Static(storage.LocalFilesPath, cfg.ReportsDir)
	}

	var idempotency gin.HandlerFunc
	if cfg.Idempotency != nil {
		idempotency = middleware.Idempotency(cfg.Idempotency, cfg.IdempotencyTTL)
	}

	r := NewRouter(engine)
	if handlers.Agents != nil {
		r.Register(AgentRoutes(handlers.Agents))
	}
	if handlers.Clients != nil {
		r.Register(ClientRoutes(handlers.Clients))
	}
	if handlers.Lots != nil {
		r.Register(LotRoutes(handlers.Lots))
	}
	if handlers.Sales != nil {
		r.Register(SaleRoutes(handlers.Sales, idempotency))
	}
	if handlers.Reports != nil {
		r.Register(ReportRoutes(handlers.Reports))
	}
	r.Setup()

	return engine
}
