package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverBolt     = "bolt"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Experiment ExperimentConfig
	Events     EventsConfig
	Auth       AuthConfig
	Demo       DemoConfig
	SMTP       SMTPConfig
	Telemetry  TelemetryConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection     string
	StoreDriver    string // "postgres", "bolt" or "memory"
	BoltPath       string
	MemoryStoreTTL time.Duration
}

type ExperimentConfig struct {
	VariantPolicy   string // "deterministic" or "random"
	VariantCacheTTL time.Duration
}

type EventsConfig struct {
	Topic string
}

type AuthConfig struct {
	JWTSecret string
}

// DemoConfig describes the user served when a request carries no session token.
type DemoConfig struct {
	UserID            string
	UserEmail         string
	SubscriptionID    string
	SubscriptionPrice int64 // cents
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3001"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Connection:     getEnv("DB_CONNECTION_STRING", ""),
			StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreDriverMemory)),
			BoltPath:       getEnv("BOLT_PATH", "data/cancellations.db"),
			MemoryStoreTTL: getEnvAsDuration("MEMORY_STORE_TTL", 5*time.Minute),
		},
		Experiment: ExperimentConfig{
			VariantPolicy:   getEnv("VARIANT_POLICY", "deterministic"),
			VariantCacheTTL: getEnvAsDuration("VARIANT_CACHE_TTL", 24*time.Hour),
		},
		Events: EventsConfig{
			Topic: getEnv("EVENTS_TOPIC", "cancellation_events"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Demo: DemoConfig{
			UserID:            getEnv("MOCK_USER_ID", "550e8400-e29b-41d4-a716-446655440001"),
			UserEmail:         getEnv("MOCK_USER_EMAIL", "user1@example.com"),
			SubscriptionID:    getEnv("MOCK_SUBSCRIPTION_ID", "sub_001"),
			SubscriptionPrice: int64(getEnvAsInt("MOCK_SUBSCRIPTION_PRICE", 2500)),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Subscriptions"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("5m") or a plain number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if seconds, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(seconds) * time.Second
	}
	log.Printf("Warn: invalid duration for %s: %q, using %s", key, strValue, fallback)
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
