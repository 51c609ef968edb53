package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Config holds all application configuration
type Config struct {
	Server    ServerConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	LLM       LLMConfig
	Providers ProvidersConfig
	App       AppConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	SQLitePath      string
	ConnMaxLifetime time.Duration
	MaxOpenConns    int
	MaxIdleConns    int
}

// LLMConfig holds the language-model endpoint configuration.
//
// ExplainTimeout must be longer than ParseTimeout: explanation is the
// user-facing step, parsing gates everything after it.
type LLMConfig struct {
	BaseURL        string
	Model          string
	ParseTimeout   time.Duration
	ExplainTimeout time.Duration
}

// ProvidersConfig holds status provider configuration
type ProvidersConfig struct {
	BankStatusURL     string
	MerchantStatusURL string
	FixturesPath      string
	Timeout           time.Duration
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	AIAdvisorEnabled bool
	FailureRate      float64
	MinLatencyMS     int
	MaxLatencyMS     int
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", "15s"),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", "180s"),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", "60s"),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverSQLite),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			DBName:          getEnv("DB_NAME", "disputes"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			SQLitePath:      getEnv("SQLITE_PATH", "disputes.db"),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "5m"),
		},
		LLM: LLMConfig{
			BaseURL:        getEnv("LLM_BASE_URL", "http://localhost:11434/api/generate"),
			Model:          getEnv("LLM_MODEL", "llama3"),
			ParseTimeout:   getEnvAsDuration("LLM_PARSE_TIMEOUT", "30s"),
			ExplainTimeout: getEnvAsDuration("LLM_EXPLAIN_TIMEOUT", "90s"),
		},
		Providers: ProvidersConfig{
			BankStatusURL:     getEnv("BANK_STATUS_URL", ""),
			MerchantStatusURL: getEnv("MERCHANT_STATUS_URL", ""),
			FixturesPath:      getEnv("STATUS_FIXTURES_PATH", ""),
			Timeout:           getEnvAsDuration("PROVIDER_TIMEOUT", "5s"),
		},
		App: AppConfig{
			AIAdvisorEnabled: getEnvAsBool("AI_ADVISOR_ENABLED", false),
			FailureRate:      getEnvAsFloat("FAILURE_RATE", 0),
			MinLatencyMS:     getEnvAsInt("MIN_LATENCY_MS", 0),
			MaxLatencyMS:     getEnvAsInt("MAX_LATENCY_MS", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", LogFormatJSON),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port cannot be empty")
	}

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.Host == "" {
			return fmt.Errorf("database host cannot be empty")
		}
		if c.Database.DBName == "" {
			return fmt.Errorf("database name cannot be empty")
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("sqlite path cannot be empty")
		}
	default:
		return fmt.Errorf("unsupported database driver: %s (must be %s or %s)", c.Database.Driver, DriverPostgres, DriverSQLite)
	}

	if c.LLM.BaseURL == "" {
		return fmt.Errorf("llm base url cannot be empty")
	}
	if c.LLM.ParseTimeout <= 0 {
		return fmt.Errorf("llm parse timeout must be positive")
	}
	if c.LLM.ExplainTimeout <= c.LLM.ParseTimeout {
		return fmt.Errorf("llm explain timeout (%s) must be longer than parse timeout (%s)",
			c.LLM.ExplainTimeout, c.LLM.ParseTimeout)
	}

	if c.Providers.Timeout <= 0 {
		return fmt.Errorf("provider timeout must be positive")
	}

	if c.App.FailureRate < 0 || c.App.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %f", c.App.FailureRate)
	}

	if c.App.MinLatencyMS < 0 {
		return fmt.Errorf("min latency cannot be negative")
	}
	if c.App.MaxLatencyMS < c.App.MinLatencyMS {
		return fmt.Errorf("max latency (%d) must be >= min latency (%d)", c.App.MaxLatencyMS, c.App.MinLatencyMS)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}
	if c.Logger.Format != LogFormatJSON && c.Logger.Format != LogFormatText {
		return fmt.Errorf("invalid log format: %s (must be %s or %s)", c.Logger.Format, LogFormatJSON, LogFormatText)
	}

	return nil
}

// DSN returns the connection string for the configured driver
func (c *DatabaseConfig) DSN() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", c.SQLitePath)
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		// Fallback to parsing the default if provided value is invalid
		duration, err = time.ParseDuration(defaultValue)
		if err != nil {
			return 0
		}
	}
	return duration
}
