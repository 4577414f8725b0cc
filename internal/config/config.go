package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds environment driven configuration. Sensitive values have no
// in-code defaults and must come from the environment.
type Config struct {
	AppPort string
	GinMode string

	DatabaseDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	// Secret used to verify access tokens minted by the identity service.
	JWTSecret string

	AllowedOrigins []string

	LogLevel      string
	LogPath       string
	LogMaxSizeMB  int
	LogMaxBackups int
	LogMaxAgeDays int
	LogCompress   bool

	OutboxBatchSize   int
	OutboxInterval    time.Duration
	ReconcileBatch    int
	ReconcileInterval time.Duration
}

// Load reads configuration from the environment once during boot.
func Load() Config {
	return Config{
		AppPort: getenv("APP_PORT", "8080"),
		GinMode: getenv("GIN_MODE", "release"),

		DatabaseDSN: getenv("DATABASE_DSN",
			"root:root@tcp(127.0.0.1:3306)/volt?charset=utf8mb4&parseTime=True&loc=UTC"),

		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getenvInt("REDIS_DB", 0),

		KafkaBrokers: getenvList("KAFKA_BROKERS", nil),
		KafkaTopic:   getenv("KAFKA_TOPIC", "volt.social.events"),

		JWTSecret: getenv("JWT_SECRET", ""),

		AllowedOrigins: getenvList("ALLOWED_ORIGINS", []string{"*"}),

		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogPath:       getenv("LOG_PATH", ""),
		LogMaxSizeMB:  getenvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getenvInt("LOG_MAX_BACKUPS", 3),
		LogMaxAgeDays: getenvInt("LOG_MAX_AGE_DAYS", 7),
		LogCompress:   getenvBool("LOG_COMPRESS", false),

		OutboxBatchSize:   getenvInt("OUTBOX_BATCH_SIZE", 200),
		OutboxInterval:    getenvDuration("OUTBOX_INTERVAL", time.Second),
		ReconcileBatch:    getenvInt("RECONCILE_BATCH_SIZE", 500),
		ReconcileInterval: getenvDuration("RECONCILE_INTERVAL", 5*time.Minute),
	}
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvBool(key string, def bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getenvList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
