package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config структура конфигурации приложения
type Config struct {
	Environment string
	Server      struct {
		Port int
		Host string
	}
	Elevation struct {
		Server   string
		Port     int
		Protocol string
	}
	Daymet struct {
		BaseURL     string
		Concurrency int // одновременных запросов к Daymet
	}
	Database struct {
		Enabled  bool
		Host     string
		Port     int
		Name     string
		User     string
		Password string
		SSLMode  string
	}
	NATS struct {
		URL           string // пустая строка отключает публикацию событий
		SubjectPrefix string
	}
	Logging struct {
		Level string
	}
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Файл .env, если он есть, читается первым и не перекрывает уже заданные переменные.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Environment = getEnv("ENVIRONMENT", "development")

	// Конфигурация сервера
	cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
	cfg.Server.Host = getEnv("SERVER_HOST", "0.0.0.0")

	// Сервис высот
	cfg.Elevation.Server = getEnv("ELEVATION_SERVER", "elevation-service-hosted.now.sh")
	cfg.Elevation.Port = getEnvInt("ELEVATION_PORT", 443)
	cfg.Elevation.Protocol = getEnv("ELEVATION_PROTOCOL", "https")

	// Daymet
	cfg.Daymet.BaseURL = strings.TrimRight(getEnv("DAYMET_BASE_URL", "https://daymet.ornl.gov"), "/")
	cfg.Daymet.Concurrency = getEnvInt("DAYMET_CONCURRENCY", 4)
	if cfg.Daymet.Concurrency < 1 {
		cfg.Daymet.Concurrency = 1
	}

	// База данных
	cfg.Database.Enabled = getEnvBool("DB_ENABLED", false)
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnvInt("DB_PORT", 5432)
	cfg.Database.Name = getEnv("DB_NAME", "route_spreadsheet")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "postgres")
	cfg.Database.SSLMode = getEnv("DB_SSL_MODE", "disable")

	// NATS
	cfg.NATS.URL = getEnv("NATS_URL", "")
	cfg.NATS.SubjectPrefix = getEnv("NATS_SUBJECT_PREFIX", "spreadsheet.progress")

	// Конфигурация логирования
	cfg.Logging.Level = getEnv("LOG_LEVEL", "info")

	return cfg
}

// Address адрес, на котором слушает сервер
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// DSN строка подключения к PostgreSQL
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}

// getEnv получает значение переменной окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает int значение переменной окружения или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool получает bool значение переменной окружения или возвращает значение по умолчанию
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
