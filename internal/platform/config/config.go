package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration, read once at startup.
type Server struct {
	Addr          string
	Environment   string
	DatabaseURL   string
	Redis         RedisConfig
	KafkaBrokers  string
	JWTSigningKey string

	SessionTTL        time.Duration
	CleanupInterval   time.Duration
	PresenceThreshold time.Duration
	PresenceTick      time.Duration
}

// RedisConfig holds redis connection tuning.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

const (
	defaultSessionTTL        = 24 * time.Hour
	defaultCleanupInterval   = 5 * time.Minute
	defaultPresenceThreshold = 30 * time.Minute
	defaultPresenceTick      = time.Minute
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:              envOr("TOURSHIELD_ADDR", ":8080"),
		Environment:       envOr("TOURSHIELD_ENV", "development"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		KafkaBrokers:      os.Getenv("KAFKA_BROKERS"),
		JWTSigningKey:     os.Getenv("JWT_SIGNING_KEY"),
		SessionTTL:        durationOr("SESSION_TTL", defaultSessionTTL),
		CleanupInterval:   durationOr("SESSION_CLEANUP_INTERVAL", defaultCleanupInterval),
		PresenceThreshold: durationOr("PRESENCE_THRESHOLD", defaultPresenceThreshold),
		PresenceTick:      durationOr("PRESENCE_TICK", defaultPresenceTick),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     intOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: intOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  durationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  durationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: durationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
	}
	if cfg.JWTSigningKey == "" {
		// Development fallback - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func intOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
