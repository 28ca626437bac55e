package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server Configuration
	Environment     string        `env:"ENV" envDefault:"development"`
	Host            string        `env:"API_HOST"`
	Port            string        `env:"API_PORT" envDefault:"8080"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging Configuration
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
	LogRequests bool   `env:"LOG_REQUESTS" envDefault:"false"`

	// Telemetry Configuration
	Telemetry TelemetryConfig

	// Mail relay configuration
	SMTP SMTPConfig
}

// TelemetryConfig controls the OpenTelemetry trace exporter
type TelemetryConfig struct {
	Enabled      bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	SampleRatio  float64 `env:"OTEL_SAMPLING_RATIO" envDefault:"1"`
}

// SMTPConfig describes the relay used to deliver contact messages.
// None of the fields are required at start-up.
type SMTPConfig struct {
	Host     string        `env:"SMTP_HOST"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASS"`
	From     string        `env:"SMTP_FROM"`
	To       string        `env:"SMTP_TO"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"10s"`
}

// Addr returns host:port for dialing the relay
func (c SMTPConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Configured reports whether the relay has enough settings to attempt a send
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.From != "" && c.To != ""
}

// HasCredentials reports whether AUTH should be attempted
func (c SMTPConfig) HasCredentials() bool {
	return c.Username != "" && c.Password != ""
}

// Load loads the configuration from environment variables and .env files
func Load() (*Config, error) {
	// godotenv.Load never overrides variables that are already set
	envLocations := []string{".env"}
	if envName := os.Getenv("ENV"); envName != "" {
		envLocations = append([]string{fmt.Sprintf(".env.%s", envName)}, envLocations...)
	}
	for _, loc := range envLocations {
		if err := godotenv.Load(loc); err == nil {
			break
		}
	}

	return Parse()
}

// Parse builds a Config from the current process environment only
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	if cfg.SMTP.Timeout <= 0 {
		return nil, fmt.Errorf("SMTP_TIMEOUT must be positive, got %s", cfg.SMTP.Timeout)
	}

	if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLING_RATIO must be within [0, 1], got %v", cfg.Telemetry.SampleRatio)
	}

	return cfg, nil
}

// ListenAddr returns the address the HTTP server binds to
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
