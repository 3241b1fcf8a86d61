package game

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Display backends.
const (
	DisplayEPD      = "epd"
	DisplayTerminal = "terminal"
)

// Config holds runtime configuration, read from the environment.
type Config struct {
	// DBPath is the store file. It is created on first start.
	DBPath string `env:"INKQUEST_DB_PATH" envDefault:"inkquest.db"`

	// PollInterval is the fixed wait between two touch polls.
	PollInterval time.Duration `env:"INKQUEST_POLL_INTERVAL" envDefault:"200ms"`

	// Display selects the e-paper HAT or the terminal simulator.
	Display string `env:"INKQUEST_DISPLAY" envDefault:"epd"`

	// I2CBus names the bus of the touch controller.
	I2CBus string `env:"INKQUEST_I2C_BUS" envDefault:"1"`

	// SPIPort names the port of the e-paper panel. Empty means the first one.
	SPIPort string `env:"INKQUEST_SPI_PORT"`

	// Telemetry enables span export over OTLP/HTTP.
	Telemetry bool `env:"INKQUEST_TELEMETRY" envDefault:"false"`

	// Verbosity of the logger. 1 adds per-cycle decode failures.
	Verbosity int `env:"INKQUEST_VERBOSITY" envDefault:"0"`
}

// LoadConfig parses the configuration from the environment and validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the environment parser cannot.
func (c Config) Validate() error {
	switch c.Display {
	case DisplayEPD, DisplayTerminal:
	default:
		return fmt.Errorf("invalid display %q: want %q or %q", c.Display, DisplayEPD, DisplayTerminal)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.PollInterval)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Verbosity < 0 {
		return fmt.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}
