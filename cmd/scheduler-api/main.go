package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/sma-schedule-engine/api/swagger"
	"github.com/noah-isme/sma-schedule-engine/internal/handler"
	"github.com/noah-isme/sma-schedule-engine/internal/middleware"
	"github.com/noah-isme/sma-schedule-engine/internal/models"
	"github.com/noah-isme/sma-schedule-engine/internal/repository"
	"github.com/noah-isme/sma-schedule-engine/internal/service"
	"github.com/noah-isme/sma-schedule-engine/pkg/cache"
	"github.com/noah-isme/sma-schedule-engine/pkg/config"
	"github.com/noah-isme/sma-schedule-engine/pkg/database"
	"github.com/noah-isme/sma-schedule-engine/pkg/logger"
	corsmiddleware "github.com/noah-isme/sma-schedule-engine/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/sma-schedule-engine/pkg/middleware/requestid"
)

// @title Schedule Engine API
// @version 1.0.0
// @description Class session assignment over a weekly time grid.
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	workingDays, err := models.ParseWorkingDays(cfg.Scheduler.WorkingDays)
	if err != nil {
		logr.Fatal("invalid working days", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if client, err := cache.NewRedis(ctx, cfg.Redis); err != nil {
		logr.Warn("redis unavailable, snapshot cache and ui hints disabled", zap.Error(err))
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	timeSlots := repository.NewTimeSlotRepository(db)
	sessions := repository.NewClassSessionRepository(db)
	teachers := repository.NewTeacherRepository(db)
	spaces := repository.NewLearningSpaceRepository(db)
	courses := repository.NewCourseRepository(db)
	groups := repository.NewStudentGroupRepository(db)

	snapshotCache := service.NewCacheService(repository.NewCacheRepository(redisClient, logr), metrics, cfg.Snapshots.TTL, logr, cfg.Snapshots.Enabled)
	validation := service.NewAssignmentValidationService(timeSlots, sessions, courses, teachers, spaces, groups, validate, logr)
	gateway := service.NewRepositoryGateway(service.GatewayStores{
		TimeSlots: timeSlots,
		Sessions:  sessions,
		Teachers:  teachers,
		Spaces:    spaces,
		Courses:   courses,
	}, validation, snapshotCache, metrics, validate, logr)

	flows := service.NewAssignmentFlowStore(cfg.Scheduler.FlowTTL, metrics)
	scheduleSvc := service.NewScheduleService(gateway, flows, snapshotCache, service.OrchestratorOptions{
		WorkingDays:        workingDays,
		DefaultWeeklyHours: cfg.Scheduler.DefaultWeeklyHours,
	}, metrics, validate, logr)
	hintSvc := service.NewUIHintService(repository.NewUIHintRepository(redisClient), cfg.UIHints.TTL, logr)

	go sweepFlows(ctx, scheduleSvc, cfg.Scheduler.FlowTTL)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsHandler := handler.NewMetricsHandler(metrics)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics, "/metrics", "/health", "/ready"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r.Group(cfg.APIPrefix), handler.Handlers{
		Schedule: handler.NewScheduleHandler(scheduleSvc),
		Flows:    handler.NewAssignmentFlowHandler(scheduleSvc),
		UIHints:  handler.NewUIHintHandler(hintSvc),
		Metrics:  metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}

// sweepFlows drops idle assignment flows until ctx is done.
func sweepFlows(ctx context.Context, svc *service.ScheduleService, ttl time.Duration) {
	interval := ttl / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			svc.SweepFlows()
		}
	}
}
