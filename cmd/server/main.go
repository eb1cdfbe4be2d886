package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eduadmin/academia/internal/app"
	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/config"
	"github.com/eduadmin/academia/internal/controller"
	"github.com/eduadmin/academia/internal/repository"
	"github.com/eduadmin/academia/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting academia server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	_ = migrator.Close()

	// Кеш статистики опционален: без REDIS_ADDR работаем напрямую с базой
	var statsCache *cache.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("Failed to ping redis", zap.Error(err))
		}
		statsCache = cache.New(client, cfg.StatsRefresh, logger)
		logger.Info("Statistics cache enabled", zap.String("redis_addr", cfg.RedisAddr))
	}

	teacherRepo := repository.NewTeacherRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	courseRepo := repository.NewCourseRepository(pool)
	enrollmentRepo := repository.NewEnrollmentRepository(pool)
	slotRepo := repository.NewSlotRepository(pool)

	teacherService := service.NewTeacherService(teacherRepo, courseRepo, slotRepo, logger)
	studentService := service.NewStudentService(studentRepo, enrollmentRepo, courseRepo, logger)
	courseService := service.NewCourseService(courseRepo, teacherRepo, enrollmentRepo, studentRepo, slotRepo, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, studentRepo, courseRepo, teacherRepo, logger)
	scheduleService := service.NewScheduleService(slotRepo, courseRepo, teacherRepo, logger)

	server := controller.NewServer(
		teacherService,
		studentService,
		courseService,
		enrollmentService,
		scheduleService,
		statsCache,
		logger,
	)

	scheduler := app.NewScheduler(
		teacherService,
		studentService,
		courseService,
		enrollmentService,
		scheduleService,
		statsCache,
		cfg.StatsRefresh,
		logger,
	)
	if statsCache != nil {
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	httpServer := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      server.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		logger.Fatal("HTTP server failed", zap.Error(err))
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down HTTP server gracefully", zap.Error(err))
	}

	logger.Info("Server stopped")
}
