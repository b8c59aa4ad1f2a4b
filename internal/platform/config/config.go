package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures process-level configuration assembled from the environment.
type Config struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	SessionTTL    time.Duration
	AuditBuffer   int

	Redis    RedisConfig
	Postgres PostgresConfig

	// BootstrapAdmin seeds the in-memory identity provider for local runs.
	// Production deployments point the service at an external provider instead.
	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// RedisConfig configures the optional Redis-backed session store.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PostgresConfig configures the optional Postgres-backed audit store.
type PostgresConfig struct {
	URL string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() Config {
	addr := os.Getenv("OPSPORTAL_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("JWT_SIGNING_KEY")
	if signingKey == "" {
		// Development default; must be overridden in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	issuer := os.Getenv("JWT_ISSUER")
	if issuer == "" {
		issuer = "opsportal"
	}

	return Config{
		Addr:          addr,
		JWTSigningKey: signingKey,
		JWTIssuer:     issuer,
		SessionTTL:    durationFromEnv("SESSION_TTL", 12*time.Hour),
		AuditBuffer:   intFromEnv("AUDIT_BUFFER", 1024),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intFromEnv("REDIS_POOL_SIZE", 10),
			MinIdleConns: intFromEnv("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationFromEnv("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationFromEnv("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationFromEnv("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: PostgresConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		BootstrapAdminEmail:    os.Getenv("BOOTSTRAP_ADMIN_EMAIL"),
		BootstrapAdminPassword: os.Getenv("BOOTSTRAP_ADMIN_PASSWORD"),
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	if raw := os.Getenv(key); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
	}
	return fallback
}

func intFromEnv(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}
