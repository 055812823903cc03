// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	OCR      OCRConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr        string
	MaxUploadMB int64
}

type DatabaseConfig struct {
	DSN         string
	AutoMigrate bool
}

type AuthConfig struct {
	JWTSecret string
}

type OCRConfig struct {
	Engine        string // "tesseract" or "vision"
	TesseractLang string
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from the environment after loading a local .env
// file if one exists. Variables already set in the environment win over the
// .env file.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Addr:        getEnv("SERVER_ADDR", ":8081"),
			MaxUploadMB: getEnvAsInt64("MAX_UPLOAD_MB", 16),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_DSN", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			// development fallback
			JWTSecret: getEnv("JWT_SECRET", "dev-insecure-secret-change"),
		},
		OCR: OCRConfig{
			Engine:        getEnv("OCR_ENGINE", "tesseract"),
			TesseractLang: getEnv("TESSERACT_LANG", "eng"),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getEnvAsBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
