// Package config provides application configuration management from environment variables.
//
// # Overview
//
// This package loads and validates configuration from environment variables with
// sensible defaults for all settings.
//
// # Configuration Structure
//
// Server settings:
//
//	PROTOVET_HOST="0.0.0.0"
//	PROTOVET_PORT="8080"
//	PROTOVET_READ_TIMEOUT="15s"
//	PROTOVET_WRITE_TIMEOUT="15s"
//	PROTOVET_MAX_REQUEST_BYTES="4194304"
//
// Lint settings:
//
//	PROTOVET_CACHE_ENABLED="true"
//	PROTOVET_CACHE_SIZE="1024"
//	PROTOVET_OPTIONS_FILE="/etc/protovet/.protovet.yaml"
//
// Observability settings:
//
//	PROTOVET_LOG_LEVEL="info"  # debug, info, warn, error
//	PROTOVET_METRICS_ENABLED="true"
//	PROTOVET_OTEL_ENABLED="true"
//	PROTOVET_OTEL_ENDPOINT="otel-collector:4317"
//
// # Usage Example
//
// Load configuration:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Server: %s\n", cfg.Server.Addr())
//	fmt.Printf("Log level: %s\n", cfg.Observability.LogLevel)
//
// # Related Packages
//
//   - pkg/lint: Uses lint configuration
//   - pkg/observability: Uses observability configuration
package config
