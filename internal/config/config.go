package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN         string `mapstructure:"DB_DSN"`
	HTTPAddr      string `mapstructure:"HTTP_ADDR"`
	Environment   string `mapstructure:"ENV"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
	StatsRefresh  time.Duration
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	// Читаем напрямую из переменных окружения (после godotenv.Load они там)
	cfg := &Config{
		DBDSN:         os.Getenv("DB_DSN"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		Environment:   os.Getenv("ENV"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		MigrationsDir: os.Getenv("MIGRATIONS_DIR"),
	}

	// Устанавливаем дефолтные значения
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	refreshMinutes := 5
	if raw := os.Getenv("STATS_REFRESH_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("STATS_REFRESH_MINUTES must be a positive integer, got %q", raw)
		}
		refreshMinutes = parsed
	}
	cfg.StatsRefresh = time.Duration(refreshMinutes) * time.Minute

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	// Дебаг: показываем что загружено (без пароля)
	log.Printf("Config loaded\n")

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}
