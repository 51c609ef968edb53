package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: "8080"},
		Database: DatabaseConfig{Driver: DriverSQLite, SQLitePath: "disputes.db"},
		LLM: LLMConfig{
			BaseURL:        "http://localhost:11434/api/generate",
			Model:          "llama3",
			ParseTimeout:   30 * time.Second,
			ExplainTimeout: 90 * time.Second,
		},
		Providers: ProvidersConfig{Timeout: 5 * time.Second},
		Logger:    LoggerConfig{Level: "info", Format: LogFormatJSON},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 30*time.Second, cfg.LLM.ParseTimeout)
	assert.Equal(t, 90*time.Second, cfg.LLM.ExplainTimeout)
	assert.False(t, cfg.App.AIAdvisorEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", DriverPostgres)
	t.Setenv("LLM_PARSE_TIMEOUT", "5s")
	t.Setenv("LLM_EXPLAIN_TIMEOUT", "20s")
	t.Setenv("AI_ADVISOR_ENABLED", "true")
	t.Setenv("MIN_LATENCY_MS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.LLM.ParseTimeout)
	assert.Equal(t, 20*time.Second, cfg.LLM.ExplainTimeout)
	assert.True(t, cfg.App.AIAdvisorEnabled)
	assert.Equal(t, 0, cfg.App.MinLatencyMS, "invalid ints fall back to default")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty port", func(c *Config) { c.Server.Port = "" }, "server port"},
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "unsupported database driver"},
		{"postgres without host", func(c *Config) {
			c.Database.Driver = DriverPostgres
			c.Database.DBName = "disputes"
		}, "database host"},
		{"explain not longer than parse", func(c *Config) { c.LLM.ExplainTimeout = c.LLM.ParseTimeout }, "explain timeout"},
		{"failure rate out of range", func(c *Config) { c.App.FailureRate = 1.5 }, "failure rate"},
		{"latency inverted", func(c *Config) {
			c.App.MinLatencyMS = 200
			c.App.MaxLatencyMS = 100
		}, "max latency"},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }, "invalid log level"},
		{"bad log format", func(c *Config) { c.Logger.Format = "xml" }, "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	pg := DatabaseConfig{Driver: DriverPostgres, Host: "db", Port: "5432", User: "u", Password: "p", DBName: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", pg.DSN())

	lite := DatabaseConfig{Driver: DriverSQLite, SQLitePath: "/tmp/x.db"}
	assert.Equal(t, "file:/tmp/x.db?_foreign_keys=on&_busy_timeout=5000", lite.DSN())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("warning").String())
	assert.Equal(t, "INFO", parseLogLevel("whatever").String())
	assert.Equal(t, "ERROR", parseLogLevel("ERROR").String())
}

func TestNewLoggerTo_Formats(t *testing.T) {
	var jsonOut, textOut bytes.Buffer

	(&LoggerConfig{Level: "info", Format: LogFormatJSON}).NewLoggerTo(&jsonOut).Info("dispute resolved", "transaction_id", "TXN101")
	(&LoggerConfig{Level: "info", Format: LogFormatText}).NewLoggerTo(&textOut).Info("dispute resolved", "transaction_id", "TXN101")

	assert.Contains(t, jsonOut.String(), `"transaction_id":"TXN101"`)
	assert.Contains(t, jsonOut.String(), `"service":"disputes"`)
	assert.Contains(t, textOut.String(), "transaction_id=TXN101")
}

func TestNewLoggerTo_FiltersBelowLevel(t *testing.T) {
	var out bytes.Buffer
	logger := (&LoggerConfig{Level: "warn", Format: LogFormatJSON}).NewLoggerTo(&out)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}
