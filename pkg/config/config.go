package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/protovet/protovet/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Server ServerConfig

	// Lint configuration
	Lint LintConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Maximum accepted request body in bytes
	MaxRequestBytes int64
}

// LintConfig holds linting service configuration
type LintConfig struct {
	// Result cache keyed by content hash
	CacheEnabled bool
	CacheSize    int

	// Optional path to a .protovet.yaml options file applied to
	// every request served by the API
	OptionsFile string
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	// Logging
	LogLevel observability.LogLevel

	// Metrics
	MetricsEnabled bool

	// OpenTelemetry
	OTelEnabled        bool
	OTelEndpoint       string
	OTelServiceName    string
	OTelServiceVersion string
	OTelInsecure       bool // Use insecure gRPC connection
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Server:        loadServerConfig(),
		Lint:          loadLintConfig(),
		Observability: loadObservabilityConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadServerConfig loads server configuration from environment
func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("PROTOVET_HOST", "0.0.0.0"),
		Port:            getEnv("PROTOVET_PORT", "8080"),
		ReadTimeout:     getEnvDuration("PROTOVET_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("PROTOVET_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("PROTOVET_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("PROTOVET_SHUTDOWN_TIMEOUT", 30*time.Second),
		MaxRequestBytes: getEnvInt64("PROTOVET_MAX_REQUEST_BYTES", 4<<20),
	}
}

// loadLintConfig loads lint service configuration from environment
func loadLintConfig() LintConfig {
	return LintConfig{
		CacheEnabled: getEnvBool("PROTOVET_CACHE_ENABLED", true),
		CacheSize:    getEnvInt("PROTOVET_CACHE_SIZE", 1024),
		OptionsFile:  getEnv("PROTOVET_OPTIONS_FILE", ""),
	}
}

// loadObservabilityConfig loads observability configuration from environment
func loadObservabilityConfig() ObservabilityConfig {
	return ObservabilityConfig{
		LogLevel:           observability.ParseLogLevel(strings.ToLower(getEnv("PROTOVET_LOG_LEVEL", "info"))),
		MetricsEnabled:     getEnvBool("PROTOVET_METRICS_ENABLED", true),
		OTelEnabled:        getEnvBool("PROTOVET_OTEL_ENABLED", false),
		OTelEndpoint:       getEnv("PROTOVET_OTEL_ENDPOINT", "localhost:4317"),
		OTelServiceName:    getEnv("PROTOVET_OTEL_SERVICE_NAME", "protovet"),
		OTelServiceVersion: getEnv("PROTOVET_OTEL_SERVICE_VERSION", "1.0.0"),
		OTelInsecure:       getEnvBool("PROTOVET_OTEL_INSECURE", true),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if _, err := strconv.Atoi(c.Server.Port); err != nil {
		return fmt.Errorf("invalid server port: %s", c.Server.Port)
	}
	if c.Server.MaxRequestBytes <= 0 {
		return fmt.Errorf("max request bytes must be positive")
	}

	if c.Lint.CacheEnabled && c.Lint.CacheSize <= 0 {
		return fmt.Errorf("cache size must be positive when the cache is enabled")
	}

	if c.Observability.OTelEnabled {
		if c.Observability.OTelEndpoint == "" {
			return fmt.Errorf("OpenTelemetry endpoint is required when OTel is enabled")
		}
		if c.Observability.OTelServiceName == "" {
			return fmt.Errorf("OpenTelemetry service name is required when OTel is enabled")
		}
	}

	return nil
}

// Addr returns the host:port the HTTP server should bind to
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool returns a boolean environment variable or a default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return strings.ToLower(value) == "true" || value == "1"
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvInt64 returns an int64 environment variable or a default
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
