package testutil

import (
	"os"
	"strings"
	"testing"
)

// GetEnvOrSkip returns the value of the environment variable key. The test is
// skipped if it is unset or blank, so that integration tests against real
// services run only where credentials are provided.
func GetEnvOrSkip(t testing.TB, key string) string {
	t.Helper()

	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		t.Skipf("%s is not set", key)
	}
	return value
}
