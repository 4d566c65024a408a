package e2e

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// E2E_COLOURS enables colorized output for better log readability
	Colours bool `envconfig:"E2E_COLOURS" default:"true"`
	// E2E_READ_TIMEOUT bounds how long a client waits for an expected line
	ReadTimeout time.Duration `envconfig:"E2E_READ_TIMEOUT" default:"3s"`
	// E2E_SILENCE_WINDOW is how long a client listens when nothing is expected
	SilenceWindow time.Duration `envconfig:"E2E_SILENCE_WINDOW" default:"150ms"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	return cfg, err
}
