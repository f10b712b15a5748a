package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	// Bootstrap admin created at startup when no account with this email
	// exists. Both fields must be set for provisioning to happen.
	AdminEmail    string
	AdminPassword string

	// AllowedHosts are CORS origin hosts in addition to the local dev hosts.
	AllowedHosts []string

	// UploadDir is the root for uploaded product images, blog images, and the
	// catalogue PDF.
	UploadDir string

	DB    DatabaseConfig
	Redis RedisConfig
	SMTP  SMTPConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SMTPConfig contains outgoing mail parameters for contact-form
// notifications. When Host or User is empty, mail sending is disabled.
type SMTPConfig struct {
	Host       string
	Port       string
	User       string
	Password   string
	OwnerEmail string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	cfg.AdminEmail = strings.ToLower(getEnv("ADMIN_EMAIL", ""))
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")

	if hosts := getEnv("ALLOWED_HOSTS", ""); hosts != "" {
		for _, h := range strings.Split(hosts, ",") {
			if h = strings.TrimSpace(strings.ToLower(h)); h != "" {
				cfg.AllowedHosts = append(cfg.AllowedHosts, h)
			}
		}
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// SMTP
	cfg.SMTP = SMTPConfig{
		Host:       getEnv("SMTP_HOST", ""),
		Port:       getEnv("SMTP_PORT", "587"),
		User:       getEnv("SMTP_USER", ""),
		Password:   getEnv("SMTP_PASS", ""),
		OwnerEmail: getEnv("OWNER_EMAIL", ""),
	}
	if cfg.SMTP.OwnerEmail == "" {
		cfg.SMTP.OwnerEmail = cfg.SMTP.User
	}

	// Basic validation for DB parameters.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// A weak or missing JWT secret is fatal in production only; development
	// gets a fallback so the server still starts.
	if len(cfg.JWTSecret) < 32 {
		if cfg.Env == "production" {
			return nil, fmt.Errorf("JWT_SECRET must be at least 32 characters in production (got %d)", len(cfg.JWTSecret))
		}
		if cfg.JWTSecret == "" {
			cfg.JWTSecret = "dev_fallback_secret_not_for_production"
		}
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
