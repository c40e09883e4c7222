package config

import (
	"os"
	"time"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Cloudinary CloudinaryConfig
	Gateway    GatewayConfig
	Payment    PaymentConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
}

// GatewayConfig holds the hosted-checkout provider credentials.
type GatewayConfig struct {
	BaseURL    string
	ServerKey  string
	Production bool
}

type PaymentConfig struct {
	// DeadlineDuration is how long a sponsor has to fund an approved
	// campaign before it auto-cancels.
	DeadlineDuration time.Duration
	// SweepInterval is how often overdue PENDING_PAYMENT campaigns are
	// re-scanned, as a backstop for the in-process timers.
	SweepInterval time.Duration
	FrontendURL   string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         envOr("PORT", "8088"),
			Env:          envOr("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             envOr("DATABASE_DSN", "brandloop:brandloop@tcp(localhost:3306)/brandloop?charset=utf8mb4&parseTime=True&loc=UTC"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  envOr("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: envOr("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "brandloop",
		},
		Cloudinary: CloudinaryConfig{
			CloudName: envOr("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:    envOr("CLOUDINARY_API_KEY", ""),
			APISecret: envOr("CLOUDINARY_API_SECRET", ""),
		},
		Gateway: GatewayConfig{
			BaseURL:    envOr("GATEWAY_BASE_URL", "https://app.sandbox.midtrans.com"),
			ServerKey:  envOr("GATEWAY_SERVER_KEY", ""),
			Production: os.Getenv("GATEWAY_PRODUCTION") == "true",
		},
		Payment: PaymentConfig{
			DeadlineDuration: durationOr("PAYMENT_DEADLINE", time.Hour),
			SweepInterval:    durationOr("PAYMENT_SWEEP_INTERVAL", 5*time.Minute),
			FrontendURL:      envOr("FRONTEND_URL", "http://localhost:3000"),
		},
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
