//go:build !js || !wasm

package env

import "os"

// Get retrieves an environment variable. Empty values count as unset.
func Get(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// GetOrDefault retrieves an environment variable, falling back to defaultValue.
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}
