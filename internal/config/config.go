// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"parentpoints/pkg/db" // Import db package for its Config struct
)

// Storage backends accepted in STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort string
	LogLevel   string

	StorageBackend string
	StorageFile    string
	DB             db.Config

	Suggestions SuggestionConfig
}

// SuggestionConfig configures the generative reward-suggestion client.
type SuggestionConfig struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// LoadConfig loads configuration from environment variables, after merging
// in an optional .env file (ENV_FILE, default ".env"). Variables already set
// in the environment win over the file.
func LoadConfig() (*AppConfig, error) {
	envFile := getEnv("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	backend := strings.ToLower(getEnv("STORAGE_BACKEND", BackendFile))
	dbCfg := db.Config{}
	switch backend {
	case BackendMemory, BackendFile:
	case BackendPostgres:
		dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
		if err != nil {
			return nil, fmt.Errorf("invalid DB_PORT: %w", err)
		}
		dbCfg = db.Config{
			Driver:   db.DriverPostgres,
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "parentpoints"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}
	case BackendSQLite:
		dbCfg = db.Config{
			Driver: db.DriverSQLite,
			Path:   getEnv("SQLITE_PATH", "./parent-points.db"),
		}
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND: %q", backend)
	}

	timeout, err := time.ParseDuration(getEnv("SUGGESTION_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUGGESTION_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid SUGGESTION_TIMEOUT: must be positive, got %s", timeout)
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("API_KEY")
	}

	return &AppConfig{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageBackend: backend,
		StorageFile:    getEnv("STORAGE_FILE", "./parent-points.json"),
		DB:             dbCfg,
		Suggestions: SuggestionConfig{
			APIKey:  apiKey,
			Model:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout: timeout,
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
