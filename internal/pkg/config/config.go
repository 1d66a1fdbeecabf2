package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (backend URL, etc.)
// - default: Values common across all environments (timeout, log settings)
// -----------------------------------------------------------------------------

type Config struct {
	API     APIConfig
	Session SessionConfig
	Payment PaymentConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL string `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	// Fixed request timeout; exceeding it surfaces as a connectivity failure.
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
}

type SessionConfig struct {
	// Directory holding the persisted credential and profile.
	StateDir string `envconfig:"SESSION_STATE_DIR" default:""`
}

type PaymentConfig struct {
	// Where the processor sends the user back after an off-page authentication.
	ReturnURL string `envconfig:"PAYMENT_RETURN_URL" default:"http://localhost:3000/payment/success"`
}

type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	if cfg.Session.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return Config{}, fmt.Errorf("failed to resolve state dir: %w", err)
		}
		cfg.Session.StateDir = filepath.Join(base, "spellbudex")
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://127.0.0.1:18000",
			Timeout: 2 * time.Second,
		},
		Session: SessionConfig{
			StateDir: os.TempDir(),
		},
		Payment: PaymentConfig{
			ReturnURL: "http://localhost:3000/payment/success",
		},
		Log: LogConfig{
			Level:  "error", // Error level only for tests
			Format: "text",
		},
	}
}
