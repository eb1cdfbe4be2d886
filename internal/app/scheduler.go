package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/eduadmin/academia/internal/cache"
	"github.com/eduadmin/academia/internal/service"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	teachers    *service.TeacherService
	students    *service.StudentService
	courses     *service.CourseService
	enrollments *service.EnrollmentService
	schedule    *service.ScheduleService
	cache       *cache.Cache
	interval    time.Duration
	logger      *zap.Logger
	stopChan    chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(
	teachers *service.TeacherService,
	students *service.StudentService,
	courses *service.CourseService,
	enrollments *service.EnrollmentService,
	schedule *service.ScheduleService,
	statsCache *cache.Cache,
	interval time.Duration,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		teachers:    teachers,
		students:    students,
		courses:     courses,
		enrollments: enrollments,
		schedule:    schedule,
		cache:       statsCache,
		interval:    interval,
		logger:      logger,
		stopChan:    make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runStatsRefreshTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runStatsRefreshTask периодически прогревает кеш статистики
func (s *Scheduler) runStatsRefreshTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.refreshStats(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refreshStats(ctx)
		case <-s.stopChan:
			s.logger.Info("Stats refresh task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Stats refresh task cancelled")
			return
		}
	}
}

// refreshStats пересчитывает все сводки и кладёт их в кеш
func (s *Scheduler) refreshStats(ctx context.Context) {
	s.logger.Info("Refreshing statistics cache")

	jobs := []struct {
		key   string
		fetch func(context.Context) (interface{}, error)
	}{
		{cache.KeyTeacherStats, func(ctx context.Context) (interface{}, error) { return s.teachers.Stats(ctx) }},
		{cache.KeyStudentStats, func(ctx context.Context) (interface{}, error) { return s.students.Stats(ctx) }},
		{cache.KeyCourseStats, func(ctx context.Context) (interface{}, error) { return s.courses.Stats(ctx) }},
		{cache.KeyEnrollmentStats, func(ctx context.Context) (interface{}, error) { return s.enrollments.Stats(ctx) }},
		{cache.KeyScheduleStats, func(ctx context.Context) (interface{}, error) { return s.schedule.Stats(ctx) }},
	}

	for _, job := range jobs {
		stats, err := job.fetch(ctx)
		if err != nil {
			s.logger.Error("Failed to refresh statistics", zap.String("key", job.key), zap.Error(err))
			continue
		}
		s.cache.Set(ctx, job.key, stats)
	}

	s.logger.Info("Statistics cache refreshed")
}
