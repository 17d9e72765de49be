package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cedarmondenterprises/patapesa-loan-sub000/pkg/postgres"
)

// KafkaConfig holds event streaming settings.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// JWTConfig holds API token settings.
type JWTConfig struct {
	Secret     string
	Issuer     string
	Expiration time.Duration
}

// TracingConfig holds OTLP trace export settings. An empty endpoint
// disables tracing.
type TracingConfig struct {
	Endpoint string
	Insecure bool
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	ServiceName   string
	HTTPPort      int
	LogLevel      string
	LogFormat     string
	DB            postgres.Config
	MigrationsDir string
	Kafka         KafkaConfig
	JWT           JWTConfig
	Tracing       TracingConfig
}

// Validate panics on settings the service cannot start without.
func (c Config) Validate() {
	if c.DB.Password == "" {
		panic("DB_PASSWORD environment variable is required")
	}
	if c.JWT.Secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
}

// Load reads configuration from the environment.
func Load() Config {
	return Config{
		ServiceName: "lending-engine",
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		DB: postgres.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "patapesa"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "patapesa_lending"),
			SSLMode:  getEnv("DB_SSLMODE", "require"),
			MaxConns: int32(getEnvInt("DB_MAX_CONNS", 10)),
		},
		MigrationsDir: getEnv("MIGRATIONS_DIR", "internal/infrastructure/persistence/postgres/migrations"),
		Kafka: KafkaConfig{
			Brokers: strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
			Topic:   getEnv("KAFKA_TOPIC", "lending-events"),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", ""),
			Issuer:     getEnv("JWT_ISSUER", "patapesa"),
			Expiration: getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		},
		Tracing: TracingConfig{
			Endpoint: getEnv("OTLP_ENDPOINT", ""),
			Insecure: getEnvBool("OTLP_INSECURE", true),
		},
	}
}

// HTTPAddr returns the listen address for the REST server.
func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
