package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	DBMaxConns     int32
	MigrationsPath string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	LogLevel       string

	JWTSecret         string
	JWTExpiryDuration time.Duration

	RedisURL             string
	FiscalPeriodCacheTTL time.Duration

	RateLimit          string // ulule format, e.g. "100-M"
	CORSAllowedOrigins []string

	DefaultCurrency           string
	ReversalTypePolicy        string
	JournalCreateMaxAttempts  int
	JournalCreateRetryBackoff time.Duration
	AuditBufferSize           int
}

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("MIGRATIONS_PATH", "migrations")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("FISCAL_PERIOD_CACHE_TTL", "5m")
	v.SetDefault("RATE_LIMIT", "300-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_CURRENCY", "IDR")
	v.SetDefault("REVERSAL_TYPE_POLICY", "original")
	v.SetDefault("JOURNAL_CREATE_MAX_ATTEMPTS", 3)
	v.SetDefault("JOURNAL_CREATE_RETRY_BACKOFF", "50ms")
	v.SetDefault("AUDIT_BUFFER_SIZE", 256)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:        v.GetString("PGSQL_URL"),
		DBMaxConns:         v.GetInt32("DB_MAX_CONNS"),
		MigrationsPath:     v.GetString("MIGRATIONS_PATH"),
		Port:               v.GetString("PORT"),
		IsProduction:       v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:      v.GetBool("ENABLE_DB_CHECK"),
		LogLevel:           strings.ToLower(v.GetString("LOG_LEVEL")),
		JWTSecret:          v.GetString("JWT_SECRET"),
		RedisURL:           v.GetString("REDIS_URL"),
		RateLimit:          v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		DefaultCurrency:    strings.ToUpper(v.GetString("DEFAULT_CURRENCY")),
		ReversalTypePolicy: strings.ToLower(v.GetString("REVERSAL_TYPE_POLICY")),

		JournalCreateMaxAttempts: v.GetInt("JOURNAL_CREATE_MAX_ATTEMPTS"),
		AuditBufferSize:          v.GetInt("AUDIT_BUFFER_SIZE"),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. Fiscal periods will not be cached.")
	}

	var err error
	if cfg.JWTExpiryDuration, err = parseDuration(v, "JWT_EXPIRY_DURATION", time.Hour); err != nil {
		return nil, err
	}
	if cfg.FiscalPeriodCacheTTL, err = parseDuration(v, "FISCAL_PERIOD_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JournalCreateRetryBackoff, err = parseDuration(v, "JOURNAL_CREATE_RETRY_BACKOFF", 50*time.Millisecond); err != nil {
		return nil, err
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid LOG_LEVEL %q", cfg.LogLevel)
	}
	switch cfg.ReversalTypePolicy {
	case "original", "adjustment":
	default:
		return nil, fmt.Errorf("invalid REVERSAL_TYPE_POLICY %q, expected original or adjustment", cfg.ReversalTypePolicy)
	}
	if len(cfg.DefaultCurrency) != 3 {
		return nil, fmt.Errorf("invalid DEFAULT_CURRENCY %q, expected a 3-letter code", cfg.DefaultCurrency)
	}
	if cfg.JournalCreateMaxAttempts < 1 {
		return nil, fmt.Errorf("JOURNAL_CREATE_MAX_ATTEMPTS must be at least 1, got %d", cfg.JournalCreateMaxAttempts)
	}
	if cfg.DBMaxConns < 1 {
		return nil, fmt.Errorf("DB_MAX_CONNS must be at least 1, got %d", cfg.DBMaxConns)
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := v.GetString(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
