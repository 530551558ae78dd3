package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BackendURL string
	HTTPAddr   string

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	ChromeBin    string
	PDFOutputDir string

	FetchTimeout  time.Duration
	ImageTimeout  time.Duration
	ExportTimeout time.Duration
	MaxRetries    int

	LogLevel string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		BackendURL: getEnv("BACKEND_URL", ""),
		HTTPAddr:   getEnv("HTTP_ADDR", ":8080"),

		// History is optional: leave POSTGRES_HOST empty to run without it.
		PostgresHost:     getEnv("POSTGRES_HOST", ""),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "ficha"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "ficha123"),
		PostgresDB:       getEnv("POSTGRES_DB", "ficha_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		ChromeBin:    getEnv("CHROME_BIN", ""),
		PDFOutputDir: getEnv("PDF_OUTPUT_DIR", "./output"),

		FetchTimeout:  getEnvDurationMs("FETCH_TIMEOUT_MS", 30000),
		ImageTimeout:  getEnvDurationMs("IMAGE_FETCH_TIMEOUT_MS", 10000),
		ExportTimeout: getEnvDurationMs("EXPORT_TIMEOUT_MS", 90000),
		MaxRetries:    getEnvInt("MAX_RETRIES", 2),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// HistoryEnabled reports whether a PostgreSQL history store is configured.
func (c *Config) HistoryEnabled() bool {
	return c.PostgresHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDurationMs(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}
