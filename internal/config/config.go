package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port            string
	GinMode         string
	StorageDriver   string
	SQLiteDSN       string
	SeedFile        string
	LogLevel        string
	LogFormat       string
	RateLimitRPS    float64
	RateLimitBurst  int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load reads an optional .env file, then the environment.
// Variables already set in the environment win over the file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		StorageDriver:   getEnv("STORAGE_DRIVER", StorageMemory),
		SQLiteDSN:       getEnv("SQLITE_DSN", ":memory:"),
		SeedFile:        getEnv("SEED_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 0),
		RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 20),
		ReadTimeout:     getEnvDuration("READ_TIMEOUT", 10*time.Second),
		WriteTimeout:    getEnvDuration("WRITE_TIMEOUT", 10*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second),
	}
}

// Validate rejects settings the server cannot start with
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	switch c.StorageDriver {
	case StorageMemory, StorageSQLite:
	default:
		return fmt.Errorf("unknown storage driver %q (want %q or %q)", c.StorageDriver, StorageMemory, StorageSQLite)
	}
	switch c.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("unknown gin mode %q (want %q, %q or %q)", c.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.RateLimitRPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
