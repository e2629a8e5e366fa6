//go:build !js || !wasm

package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	t.Setenv("HRMS_TEST_VALUE", "present")
	t.Setenv("HRMS_TEST_EMPTY", "")

	value, ok := Get("HRMS_TEST_VALUE")
	assert.True(t, ok)
	assert.Equal(t, "present", value)

	_, ok = Get("HRMS_TEST_EMPTY")
	assert.False(t, ok, "empty variables are treated as unset")

	_, ok = Get("HRMS_TEST_DEFINITELY_MISSING")
	assert.False(t, ok)
}

func TestGetOrDefault(t *testing.T) {
	t.Setenv("HRMS_TEST_VALUE", "present")

	assert.Equal(t, "present", GetOrDefault("HRMS_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", GetOrDefault("HRMS_TEST_DEFINITELY_MISSING", "fallback"))
}
