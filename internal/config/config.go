package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the dashboard.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Triage    TriageConfig
	Dashboard DashboardConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// TriageConfig tunes the simulated AI classifier.
type TriageConfig struct {
	// LatencyMS is the fixed artificial delay of a classification call,
	// emulating a remote inference service.
	LatencyMS int
}

// DashboardConfig carries demo state consumed from outside the core: the
// agent roster and whether to seed the sample ticket list. Neither affects
// correctness, only initial state.
type DashboardConfig struct {
	SeedDemoData bool
	Agents       []string
}

var defaultAgents = []string{
	"Agent Smith",
	"Agent Scully",
	"Agent Mulder",
	"Agent Cooper",
	"Agent Starling",
}

// Load reads configuration from environment variables, applying defaults
// where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	latencyMS := getEnvAsInt("TRIAGE_LATENCY_MS", 600)
	if latencyMS < 0 {
		return nil, fmt.Errorf("invalid TRIAGE_LATENCY_MS: must be >= 0, got %d", latencyMS)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "triage-dashboard"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Triage: TriageConfig{
			LatencyMS: latencyMS,
		},
		Dashboard: DashboardConfig{
			SeedDemoData: getEnvAsBool("DASHBOARD_SEED_DEMO_DATA", true),
			Agents:       getEnvAsList("DASHBOARD_AGENTS", defaultAgents),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Latency returns the classifier delay as a duration.
func (t TriageConfig) Latency() time.Duration {
	return time.Duration(t.LatencyMS) * time.Millisecond
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parts := strings.Split(val, ",")
	list := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			list = append(list, trimmed)
		}
	}
	if len(list) == 0 {
		return fallback
	}
	return list
}
