package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int32(10), cfg.DBMaxConns)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 5*time.Minute, cfg.FiscalPeriodCacheTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.JournalCreateRetryBackoff)
	assert.Equal(t, 3, cfg.JournalCreateMaxAttempts)
	assert.Equal(t, 256, cfg.AuditBufferSize)
	assert.Equal(t, "IDR", cfg.DefaultCurrency)
	assert.Equal(t, "original", cfg.ReversalTypePolicy)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, defaultJWTSecret, cfg.JWTSecret)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"PGSQL_URL":               "postgres://journal:secret@db:5432/journal",
		"LOG_LEVEL":               "DEBUG",
		"DEFAULT_CURRENCY":        "usd",
		"REVERSAL_TYPE_POLICY":    "Adjustment",
		"CORS_ALLOWED_ORIGINS":    "https://erp.example.com, https://admin.example.com ,",
		"JWT_SECRET":              "another-secret",
		"IS_PRODUCTION":           true,
		"FISCAL_PERIOD_CACHE_TTL": "30s",
	}))

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "USD", cfg.DefaultCurrency)
	assert.Equal(t, "adjustment", cfg.ReversalTypePolicy)
	assert.Equal(t, []string{"https://erp.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.FiscalPeriodCacheTTL)
	assert.True(t, cfg.IsProduction)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]any
		want   string
	}{
		{"default secret in production", map[string]any{"IS_PRODUCTION": true}, "JWT_SECRET"},
		{"unknown reversal policy", map[string]any{"REVERSAL_TYPE_POLICY": "mirror"}, "REVERSAL_TYPE_POLICY"},
		{"currency length", map[string]any{"DEFAULT_CURRENCY": "RUPIAH"}, "DEFAULT_CURRENCY"},
		{"log level", map[string]any{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"bad duration", map[string]any{"JWT_EXPIRY_DURATION": "one hour"}, "JWT_EXPIRY_DURATION"},
		{"no create attempts", map[string]any{"JOURNAL_CREATE_MAX_ATTEMPTS": 0}, "JOURNAL_CREATE_MAX_ATTEMPTS"},
		{"no connections", map[string]any{"DB_MAX_CONNS": 0}, "DB_MAX_CONNS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fromViper(newViper(tt.values))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
