//go:build js && wasm

package env

import "github.com/syumai/workers/cloudflare"

// Get retrieves a variable from the Workers environment bindings.
// Empty values count as unset.
func Get(key string) (string, bool) {
	value := cloudflare.Getenv(key)
	if value == "" {
		return "", false
	}
	return value, true
}

// GetOrDefault retrieves a Workers variable, falling back to defaultValue.
func GetOrDefault(key, defaultValue string) string {
	if value, ok := Get(key); ok {
		return value
	}
	return defaultValue
}
