// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zone database for hosts without one

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/joshinitinofficial/algotest-trade-visualizer/internal/utils"
)

// Config holds application configuration
type Config struct {
	LogLevel       string
	Port           int
	DevMode        bool
	DefaultCapital float64 // Capital deployed (INR) when a request does not name one
	Timezone       string  // IANA zone for timestamps without an offset
	MaxUploadBytes int64
	CORSOrigins    []string
	S3             S3Config
}

// S3Config holds settings for reading trade documents from S3.
type S3Config struct {
	Region          string
	Endpoint        string // Optional custom endpoint (MinIO, LocalStack)
	AccessKeyID     string // Optional; the default AWS credential chain is used otherwise
	SecretAccessKey string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvAsInt("GO_PORT", 8001),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DevMode:        getEnvAsBool("DEV_MODE", false),
		DefaultCapital: getEnvAsFloat("ANALYZER_DEFAULT_CAPITAL", 1000000),
		Timezone:       getEnv("ANALYZER_TIMEZONE", "Asia/Kolkata"),
		MaxUploadBytes: int64(getEnvAsInt("ANALYZER_MAX_UPLOAD_BYTES", 20<<20)),
		CORSOrigins:    utils.ParseCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		S3: S3Config{
			Region:          getEnv("AWS_REGION", "ap-south-1"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		},
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid GO_PORT %d", c.Port)
	}
	if c.DefaultCapital < 0 {
		return fmt.Errorf("ANALYZER_DEFAULT_CAPITAL must not be negative, got %v", c.DefaultCapital)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("ANALYZER_MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}
	if len(c.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ALLOWED_ORIGINS must name at least one origin")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured time zone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYZER_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Capital returns the default capital as a decimal.
func (c *Config) Capital() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultCapital)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
