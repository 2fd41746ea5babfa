package utils

import (
	"os"
	"strings"
)

// GetEnvVariable reads key from the environment, falling back to defaultValue.
func GetEnvVariable(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// TrimToNil returns nil for a blank string, the trimmed value otherwise.
func TrimToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
