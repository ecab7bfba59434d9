package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/plannora/planning-api/api/swagger"
	"github.com/plannora/planning-api/internal/handler"
	"github.com/plannora/planning-api/internal/repository"
	"github.com/plannora/planning-api/internal/service"
	"github.com/plannora/planning-api/pkg/cache"
	"github.com/plannora/planning-api/pkg/config"
	"github.com/plannora/planning-api/pkg/database"
	"github.com/plannora/planning-api/pkg/logger"
	corsmiddleware "github.com/plannora/planning-api/pkg/middleware/cors"
	reqidmiddleware "github.com/plannora/planning-api/pkg/middleware/requestid"
)

// @title Plannora Planning API
// @version 0.1.0
// @description Weekly schedule generation and constraint validation
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Planning.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, planning cache disabled", zap.Error(err))
			redisClient = nil
		}
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := service.NewMetricsService()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metrics.GinMiddleware())

	registerRoutes(r, cfg, logr, db, redisClient, metrics)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func registerRoutes(r *gin.Engine, cfg *config.Config, logr *zap.Logger, db *sqlx.DB, redisClient *redis.Client, metrics *service.MetricsService) {
	employeeRepo := repository.NewEmployeeRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	planningRepo := repository.NewPlanningRepository(db)

	var planningCache service.PlanningCache
	if redisClient != nil {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		planningCache = service.NewCacheService(cacheRepo, metrics, logr, cfg.Planning.CacheEnabled, cfg.Planning.CacheTTL)
	}

	var provider service.ProposalProvider
	if cfg.Planning.ProposalURL != "" {
		provider = service.NewHTTPProposalProvider(cfg.Planning.ProposalURL, cfg.Planning.ProposalTimeout)
	}

	planningService := service.NewPlanningService(
		employeeRepo, companyRepo, planningRepo,
		provider, planningCache, metrics, logr,
		cfg.Planning.StrictChecks,
	)
	exportService := service.NewExportService(planningRepo)
	constraintService := service.NewConstraintService(companyRepo, planningCache)

	planningHandler := handler.NewPlanningHandler(planningService)
	exportHandler := handler.NewExportHandler(exportService, cfg.Export.Enabled)
	constraintHandler := handler.NewConstraintHandler(constraintService)
	metricsHandler := handler.NewMetricsHandler(metrics, db, redisClient)

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/plannings/generate", planningHandler.Generate)
		api.POST("/plannings/validate", planningHandler.Validate)
		api.POST("/plannings", planningHandler.Save)
		api.GET("/plannings/:teamId", planningHandler.Get)
		api.GET("/plannings/:teamId/weeks", planningHandler.ListWeeks)
		api.GET("/plannings/:teamId/export", exportHandler.Export)
		api.GET("/teams/:teamId/constraints", constraintHandler.Get)
		api.PUT("/teams/:teamId/constraints", constraintHandler.Put)
	}
}
