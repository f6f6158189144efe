package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"croulette/database"
)

// Config holds all application configuration
type Config struct {
	// Chat platforms. At least one token is required outside tests.
	DiscordToken  string
	TelegramToken string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Game configuration
	StartingBalance int64
	SettingsFile    string // Path to the game command settings; empty means built-in defaults

	// Per-scope command rate limit
	CommandRateLimit float64 // Commands per second
	CommandRateBurst int

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated); empty disables forwarding

	// Debug API
	DebugAPIAddr string // Set but empty disables the HTTP API

	// OpenTelemetry configuration
	OTelEnabled              bool
	OTelExporterType         string // "console", "otlp" or "none"
	OTelOTLPEndpoint         string
	OTelServiceName          string
	OTelExportIntervalMillis int

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development", "production" or "test"
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	return load()
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		DiscordToken:  os.Getenv("DISCORD_TOKEN"),
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		StartingBalance: 1000,
		SettingsFile:    os.Getenv("SETTINGS_FILE"),

		CommandRateLimit: 2,
		CommandRateBurst: 5,

		NATSServers:  os.Getenv("NATS_SERVERS"),
		DebugAPIAddr: "localhost:8899",

		OTelEnabled:              os.Getenv("OTEL_ENABLED") == "true",
		OTelExporterType:         getEnvWithDefault("OTEL_EXPORTER_TYPE", "console"),
		OTelOTLPEndpoint:         getEnvWithDefault("OTEL_OTLP_ENDPOINT", "localhost:4317"),
		OTelServiceName:          getEnvWithDefault("OTEL_SERVICE_NAME", "croulette"),
		OTelExportIntervalMillis: 60000,

		LogLevel:  getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat: getEnvWithDefault("LOG_FORMAT", "text"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if addr, ok := os.LookupEnv("DEBUG_API_ADDR"); ok {
		config.DebugAPIAddr = strings.TrimSpace(addr)
	}
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := strconv.ParseInt(balance, 10, 64)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("STARTING_BALANCE must be a non-negative integer, got %q", balance)
		}
		config.StartingBalance = parsed
	}
	if limit := os.Getenv("COMMAND_RATE_LIMIT"); limit != "" {
		parsed, err := strconv.ParseFloat(limit, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("COMMAND_RATE_LIMIT must be a positive number, got %q", limit)
		}
		config.CommandRateLimit = parsed
	}
	if burst := os.Getenv("COMMAND_RATE_BURST"); burst != "" {
		parsed, err := strconv.Atoi(burst)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("COMMAND_RATE_BURST must be a positive integer, got %q", burst)
		}
		config.CommandRateBurst = parsed
	}
	if interval := os.Getenv("OTEL_EXPORT_INTERVAL_MS"); interval != "" {
		if parsed, err := strconv.Atoi(interval); err == nil && parsed > 0 {
			config.OTelExportIntervalMillis = parsed
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" && config.TelegramToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN or TELEGRAM_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// NATSServerList splits NATSServers into individual addresses
func (c *Config) NATSServerList() []string {
	var servers []string
	for _, s := range strings.Split(c.NATSServers, ",") {
		if s = strings.TrimSpace(s); s != "" {
			servers = append(servers, s)
		}
	}
	return servers
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:              "test",
		StartingBalance:          1000,
		CommandRateLimit:         100,
		CommandRateBurst:         100,
		OTelExporterType:         "none",
		OTelServiceName:          "croulette-test",
		OTelExportIntervalMillis: 60000,
		LogLevel:                 "debug",
		LogFormat:                "text",
	}
}
