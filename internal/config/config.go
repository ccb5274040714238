// Package config reads runtime settings from the environment, loading a
// local .env file first when one exists.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Port       string
	GinMode    string
	LogLevel   string
	LogFormat  string
	Storage    string
	CORSOrigin []string

	DB    DBConfig
	Redis RedisConfig

	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration

	RateLimit       int
	RateLimitWindow time.Duration
	CacheTTL        time.Duration

	GuestActivityLimit int
	GoalSweepInterval  time.Duration
	DefaultTimezone    string

	KafkaBrokers     []string
	KafkaTopicPrefix string

	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration
}

type DBConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
	SSLMode  string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

// Load reads the environment, applying defaults suited to local development.
// Files listed in envFiles are loaded first; missing files are ignored and
// never override variables already set.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return Config{}, fmt.Errorf("config: load %s: %w", f, err)
			}
		}
	}

	cfg := Config{
		Port:       getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "json"),
		Storage:    strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		CORSOrigin: splitAndTrim(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		DB: DBConfig{
			User:     getEnv("DB_USER", "ecotrack_user"),
			Password: getEnv("DB_PASSWORD", "secret"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "ecotrack_db"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},

		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "ecotrack-api"),
		JWTDuration: getDurationEnv("JWT_DURATION", 72*time.Hour),

		RateLimit:       getIntEnv("RATE_LIMIT", 100),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		CacheTTL:        getDurationEnv("CACHE_TTL", 30*time.Minute),

		GuestActivityLimit: getIntEnv("GUEST_ACTIVITY_LIMIT", 10),
		GoalSweepInterval:  getDurationEnv("GOAL_SWEEP_INTERVAL", 15*time.Minute),
		DefaultTimezone:    getEnv("DEFAULT_TIMEZONE", "UTC"),

		KafkaBrokers:     splitAndTrim(getEnv("KAFKA_BROKERS", "")),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", "ecotrack"),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout: getDurationEnv("GEMINI_TIMEOUT", 20*time.Second),
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.Storage != StoragePostgres && c.Storage != StorageMemory {
		return fmt.Errorf("config: unknown STORAGE %q", c.Storage)
	}
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil {
		return fmt.Errorf("config: invalid DEFAULT_TIMEZONE: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
