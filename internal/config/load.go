//go:build !js || !wasm

package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Load populates Config from HRMS_* environment variables.
func Load() (Config, error) {
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}
