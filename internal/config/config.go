package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port               string
	GinMode            string
	AppEnv             string
	DBDriver           string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	SQLitePath         string
	LogLevel           string
	LogFormat          string
	CORSAllowedOrigins []string
	RedisHost          string
	RedisPort          string
	ReportCacheTTL     time.Duration
	SeedData           bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	// Missing .env is fine outside development
	_ = godotenv.Load()

	appEnv := getEnv("APP_ENV", "development")

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		AppEnv:             appEnv,
		DBDriver:           strings.ToLower(getEnv("DB_DRIVER", DriverMySQL)),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "3306"),
		DBUser:             getEnv("DB_USER", "taskuser"),
		DBPassword:         getEnv("DB_PASSWORD", "taskpassword"),
		DBName:             getEnv("DB_NAME", "task_management"),
		SQLitePath:         getEnv("SQLITE_PATH", "task_management.db"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RedisHost:          getEnv("REDIS_HOST", "localhost"),
		RedisPort:          getEnv("REDIS_PORT", "6379"),
		ReportCacheTTL:     getEnvAsDuration("REPORT_CACHE_TTL", 0),
		SeedData:           getEnvAsBool("SEED_DATA", appEnv == "development"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for driver %s", c.DBDriver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.ReportCacheTTL < 0 {
		return fmt.Errorf("REPORT_CACHE_TTL cannot be negative")
	}

	return nil
}

// RedisAddr returns host:port of the report cache.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}

	var values []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
