package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("PORT", "")
	t.Setenv("STORE_PLAINTEXT_PASSWORDS", "")
	t.Setenv("CORS_ALLOWED_ORIGIN", "")
	t.Setenv("RATE_LIMIT_RPS", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.True(t, cfg.IsDev())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:3000", cfg.HTTP.AllowedOrigin)
	assert.False(t, cfg.StorePlaintextPasswords)
	assert.Equal(t, 3*time.Second, cfg.Kafka.PollInterval)
	// a shared office IP swiping in together stays under the limit
	assert.Equal(t, float64(50), cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 200, cfg.HTTP.RateLimitBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9000")
	t.Setenv("STORE_PLAINTEXT_PASSWORDS", "true")
	t.Setenv("DB_MAX_RETRIES", "2")
	t.Setenv("OUTBOX_POLL_INTERVAL", "500ms")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()

	assert.False(t, cfg.IsDev())
	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.StorePlaintextPasswords)
	assert.Equal(t, 2, cfg.DB.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.PollInterval)
	assert.Equal(t, float64(50), cfg.HTTP.RateLimitRPS)
}
