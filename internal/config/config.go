// Package config loads the API client settings from the environment.
package config

import (
	"errors"
	"time"
)

// Prefix is prepended to every variable name, e.g. HRMS_API_BASE_URL.
const Prefix = "HRMS"

// DefaultBaseURL is the API root used when HRMS_API_BASE_URL is unset.
const DefaultBaseURL = "http://localhost:5000/api"

// Config groups the client tunables.
type Config struct {
	BaseURL    string        `envconfig:"API_BASE_URL" default:"http://localhost:5000/api"`
	Timeout    time.Duration `envconfig:"TIMEOUT"      default:"30s"`
	MaxRetries int           `envconfig:"MAX_RETRIES"  default:"2"`
	RetryDelay time.Duration `envconfig:"RETRY_DELAY"  default:"1s"`
	LoginPath  string        `envconfig:"LOGIN_PATH"   default:"/login"`

	// TokenPath is where the file session store keeps the token. Empty
	// selects ~/.hrms/session.json.
	TokenPath string `envconfig:"TOKEN_PATH"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		BaseURL:    DefaultBaseURL,
		Timeout:    30 * time.Second,
		MaxRetries: 2,
		RetryDelay: time.Second,
		LoginPath:  "/login",
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.BaseURL == "":
		return errors.New("base URL must not be empty")
	case c.Timeout <= 0:
		return errors.New("timeout must be > 0")
	case c.MaxRetries < 0:
		return errors.New("max retries must be >= 0")
	case c.RetryDelay < 0:
		return errors.New("retry delay must be >= 0")
	}
	return nil
}
