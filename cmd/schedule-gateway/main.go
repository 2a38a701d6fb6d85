package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	internalhandler "github.com/noah-isme/sat-scheduler/internal/handler"
	internalmiddleware "github.com/noah-isme/sat-scheduler/internal/middleware"
	"github.com/noah-isme/sat-scheduler/internal/repository"
	"github.com/noah-isme/sat-scheduler/internal/scheduling"
	"github.com/noah-isme/sat-scheduler/pkg/cache"
	"github.com/noah-isme/sat-scheduler/pkg/config"
	"github.com/noah-isme/sat-scheduler/pkg/database"
	"github.com/noah-isme/sat-scheduler/pkg/logger"
	corsmiddleware "github.com/noah-isme/sat-scheduler/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sat-scheduler/pkg/middleware/requestid"
)

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise database", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Fatalw("failed to initialise redis", "error", err)
	}
	defer redisClient.Close()

	generationLock := cache.NewGenerationLock(redisClient, cfg.Scheduler.GenerationLockTTL)

	registry := prometheus.NewRegistry()
	metrics := internalmiddleware.NewMetrics(registry)

	schedulingRepo := repository.NewSchedulingRepository(db)
	assembler := scheduling.NewAssembler(schedulingRepo)
	generator := scheduling.NewGenerator(assembler, logr).WithMetrics(metrics)
	if cfg.Env != config.EnvProduction {
		generator = generator.WithDebugLogging(true)
	}

	scheduleHandler := internalhandler.NewScheduleGenerationHandler(
		generator,
		generationLock,
		logr,
		cfg.Scheduler.DefaultTimeoutSeconds,
		cfg.Scheduler.MaxTimeoutSeconds,
	)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(metrics.GinMiddleware())

	r.GET("/health", func(c *gin.Context) { c.Status(200) })
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group(cfg.APIPrefix)
	scheduleHandler.Register(api)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
