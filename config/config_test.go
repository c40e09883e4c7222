package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8088", cfg.Server.Port)
	assert.Equal(t, time.Hour, cfg.Payment.DeadlineDuration)
	assert.Equal(t, 5*time.Minute, cfg.Payment.SweepInterval)
	assert.Equal(t, "https://app.sandbox.midtrans.com", cfg.Gateway.BaseURL)
	assert.False(t, cfg.Gateway.Production)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PAYMENT_DEADLINE", "30m")
	t.Setenv("GATEWAY_PRODUCTION", "true")
	t.Setenv("FRONTEND_URL", "https://app.brandloop.id")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Payment.DeadlineDuration)
	assert.True(t, cfg.Gateway.Production)
	assert.Equal(t, "https://app.brandloop.id", cfg.Payment.FrontendURL)
}

func TestLoadBadDurationFallsBack(t *testing.T) {
	t.Setenv("PAYMENT_DEADLINE", "not-a-duration")
	cfg := Load()
	assert.Equal(t, time.Hour, cfg.Payment.DeadlineDuration)
}
