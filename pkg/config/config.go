package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	LogLevel string

	// StorageDriver selects the content store: "postgres" or "sqlite".
	StorageDriver string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	SQLitePath string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// UploadsDir is where the rewrite export file is written.
	UploadsDir string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		StorageDriver:    getEnv("STORAGE_DRIVER", "postgres"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "user"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "password"),
		PostgresDB:       getEnv("POSTGRES_DB", "cms"),
		SQLitePath:       getEnv("SQLITE_PATH", "cms.db"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisDB:          getEnvAsInt("REDIS_DB", 0),
		UploadsDir:       getEnv("UPLOADS_DIR", "uploads"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
