package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type ServerConfig struct {
	Port string
}

// AppConfig carries the reconciliation constants. The fee, rate and cutoff
// are fixed business constants for this version; they live here so a future
// version can make them per-request parameters without touching the engine.
type AppConfig struct {
	LogLevel    string
	AnnualFee   string
	HourlyRate  string
	FuzzyCutoff float64
	UploadDir   string
	ExportDir   string
}

func Load() (*Config, error) {
	cutoff, err := strconv.ParseFloat(getEnv("FUZZY_CUTOFF", "0.86"), 64)
	if err != nil || cutoff <= 0 || cutoff > 1 {
		cutoff = 0.86
	}

	return &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "membership_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			AnnualFee:   getEnv("ANNUAL_FEE", "120.00"),
			HourlyRate:  getEnv("HOURLY_RATE", "5.00"),
			FuzzyCutoff: cutoff,
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			ExportDir:   getEnv("EXPORT_DIR", "exports"),
		},
	}, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
