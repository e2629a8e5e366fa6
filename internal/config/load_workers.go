//go:build js && wasm

package config

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dvcrn/hrms-api-client/internal/env"
)

// Load populates Config from the Workers environment bindings.
func Load() (Config, error) {
	c := Default()
	c.BaseURL = env.GetOrDefault(Prefix+"_API_BASE_URL", c.BaseURL)
	c.LoginPath = env.GetOrDefault(Prefix+"_LOGIN_PATH", c.LoginPath)

	var err error
	if c.Timeout, err = duration(Prefix+"_TIMEOUT", c.Timeout); err != nil {
		return Config{}, err
	}
	if c.RetryDelay, err = duration(Prefix+"_RETRY_DELAY", c.RetryDelay); err != nil {
		return Config{}, err
	}
	if v, ok := env.Get(Prefix + "_MAX_RETRIES"); ok {
		if c.MaxRetries, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s_MAX_RETRIES: %w", Prefix, err)
		}
	}

	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return c, nil
}

func duration(key string, fallback time.Duration) (time.Duration, error) {
	v, ok := env.Get(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", key, err)
	}
	return d, nil
}
