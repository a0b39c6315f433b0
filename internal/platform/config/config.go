package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	DBMaxConns     int32
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RedisURL            string
	NotificationChannel string
	NotificationTimeout time.Duration

	PosthogAPIKey   string
	PosthogEndpoint string

	RateLimit          string // ulule formatted rate, e.g. "300-M"
	CORSAllowedOrigins []string

	BulkMaxItems           int
	BulkConcurrency        int
	TransientRetryAttempts int
	TransientRetryBackoff  time.Duration
	ApplicationLockTimeout time.Duration
	AllowWithdrawAfterPass bool
	PermissionsFile        string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("DB_MAX_CONNS", 20)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("NOTIFICATION_CHANNEL", "application-events")
	viper.SetDefault("NOTIFICATION_TIMEOUT", "2s")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://eu.i.posthog.com")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("BULK_MAX_ITEMS", 200)
	viper.SetDefault("BULK_CONCURRENCY", 8)
	viper.SetDefault("TRANSIENT_RETRY_ATTEMPTS", 3)
	viper.SetDefault("TRANSIENT_RETRY_BACKOFF", "50ms")
	viper.SetDefault("APPLICATION_LOCK_TIMEOUT", "2s")
	viper.SetDefault("ALLOW_WITHDRAW_AFTER_PASS", true)
	viper.SetDefault("PERMISSIONS_FILE", "")

	// Environment variables override the defaults (and the values godotenv exported).
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Notifications are disabled and rate limits are per instance.")
	}
	cfg.NotificationChannel = viper.GetString("NOTIFICATION_CHANNEL")

	var err error
	if cfg.NotificationTimeout, err = parseDuration("NOTIFICATION_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogEndpoint = viper.GetString("POSTHOG_ENDPOINT")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.BulkMaxItems = viper.GetInt("BULK_MAX_ITEMS")
	if cfg.BulkMaxItems <= 0 {
		return nil, fmt.Errorf("BULK_MAX_ITEMS must be positive, got %d", cfg.BulkMaxItems)
	}
	cfg.BulkConcurrency = viper.GetInt("BULK_CONCURRENCY")
	if cfg.BulkConcurrency <= 0 {
		return nil, fmt.Errorf("BULK_CONCURRENCY must be positive, got %d", cfg.BulkConcurrency)
	}
	cfg.TransientRetryAttempts = viper.GetInt("TRANSIENT_RETRY_ATTEMPTS")
	if cfg.TransientRetryAttempts < 1 {
		cfg.TransientRetryAttempts = 1
	}
	if cfg.TransientRetryBackoff, err = parseDuration("TRANSIENT_RETRY_BACKOFF", 50*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ApplicationLockTimeout, err = parseDuration("APPLICATION_LOCK_TIMEOUT", 2*time.Second); err != nil {
		return nil, err
	}
	cfg.AllowWithdrawAfterPass = viper.GetBool("ALLOW_WITHDRAW_AFTER_PASS")
	cfg.PermissionsFile = viper.GetString("PERMISSIONS_FILE")

	return cfg, nil
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := viper.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s (%q): %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
