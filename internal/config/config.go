package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal.
type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	ErrorLog ErrorLogConfig
}

// AppConfig controls the local HTTP surface.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// BackendConfig points at the remote enrollment backend.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
	RetryAttempts  int
}

// StorageConfig selects the durable local storage backend.
type StorageConfig struct {
	Driver string
	Dir    string
}

// RedisConfig holds Redis connection values for the redis storage driver.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// ErrorLogConfig caps the locally persisted error log.
type ErrorLogConfig struct {
	MaxEntries      int
	MaxDailyEntries int
	RetentionDays   int
}

// Storage driver names accepted by STORAGE_DRIVER.
const (
	StorageDriverFile   = "file"
	StorageDriverRedis  = "redis"
	StorageDriverMemory = "memory"
)

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "academy-portal"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "127.0.0.1"),
			Port:                  getEnv("APP_PORT", "4200"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Backend: BackendConfig{
			BaseURL:        getEnv("BACKEND_BASE_URL", "http://localhost:5000/api"),
			TimeoutSeconds: getEnvAsInt("BACKEND_TIMEOUT_SECONDS", 30),
			RetryAttempts:  getEnvAsInt("BACKEND_RETRY_ATTEMPTS", 0),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageDriverFile),
			Dir:    getEnv("STORAGE_DIR", ".portal-data"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		ErrorLog: ErrorLogConfig{
			MaxEntries:      getEnvAsInt("ERROR_LOG_MAX_ENTRIES", 1000),
			MaxDailyEntries: getEnvAsInt("ERROR_LOG_MAX_DAILY_ENTRIES", 100),
			RetentionDays:   getEnvAsInt("ERROR_LOG_RETENTION_DAYS", 30),
		},
	}

	switch cfg.Storage.Driver {
	case StorageDriverFile, StorageDriverRedis, StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER: %q", cfg.Storage.Driver)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Timeout returns the default per-request backend timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
