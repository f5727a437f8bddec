package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// EnvDevelopment enables .env loading and the interactive API docs.
	EnvDevelopment = "development"

	// MigrateSQL applies the embedded SQL migrations at startup.
	MigrateSQL = "sql"
	// MigrateAuto lets GORM auto-migrate the models at startup.
	MigrateAuto = "auto"
	// MigrateNone leaves the schema untouched.
	MigrateNone = "none"
)

var (
	// ErrMissingJWTSecret is returned when JWT_SECRET is not set.
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required")
	// ErrMissingDSN is returned when DATABASE_DSN is not set.
	ErrMissingDSN = errors.New("DATABASE_DSN is required")
	// ErrInvalidMigrateMode is returned when DB_MIGRATE holds an unknown mode.
	ErrInvalidMigrateMode = errors.New("DB_MIGRATE must be one of sql, auto, none")
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env         string
	ServerPort  string
	DBDriver    string
	DatabaseDSN string
	DBMigrate   string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	CachePrefix string
	JWTSecret   string
	TokenTTL    time.Duration
	Locale      string
	SwaggerHost string
}

// IsDevelopment reports whether the process runs in the development environment.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// Load builds Config from environment with sensible defaults.
// The signing secret and the database DSN have no default and are required.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") == EnvDevelopment {
		// A missing .env file is fine, the process env still applies.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Env:         getEnv("APP_ENV", "production"),
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN: os.Getenv("DATABASE_DSN"),
		DBMigrate:   getEnv("DB_MIGRATE", MigrateSQL),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		CachePrefix: getEnv("CACHE_PREFIX", "coursehub"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		TokenTTL:    getEnvDuration("TOKEN_TTL", 24*time.Hour),
		Locale:      getEnv("LOCALE", "pt_BR"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.DatabaseDSN == "" {
		return nil, ErrMissingDSN
	}
	switch cfg.DBMigrate {
	case MigrateSQL, MigrateAuto, MigrateNone:
	default:
		return nil, ErrInvalidMigrateMode
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
}
