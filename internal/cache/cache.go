package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Ключи кешируемых статистик
const (
	KeyTeacherStats    = "stats:teachers"
	KeyStudentStats    = "stats:students"
	KeyCourseStats     = "stats:courses"
	KeyEnrollmentStats = "stats:enrollments"
	KeyScheduleStats   = "stats:schedule"
)

// Cache — опциональный redis-кеш для статистик. Nil-получатель безопасен:
// все операции превращаются в промах, сервис работает без кеша
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func New(client *redis.Client, ttl time.Duration, logger *zap.Logger) *Cache {
	return &Cache{client: client, ttl: ttl, logger: logger}
}

// Get возвращает закешированный JSON или nil при промахе
func (c *Cache) Get(ctx context.Context, key string) json.RawMessage {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	return data
}

// Set сериализует значение и кладёт его в кеш с настроенным TTL.
// Ошибки кеша не прерывают запрос, только логируются
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}
