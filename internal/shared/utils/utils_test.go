package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvVariable(t *testing.T) {
	t.Setenv("LIBRARY_TEST_VALUE", "set")
	assert.Equal(t, "set", GetEnvVariable("LIBRARY_TEST_VALUE", "fallback"))

	t.Setenv("LIBRARY_TEST_VALUE", "")
	assert.Equal(t, "fallback", GetEnvVariable("LIBRARY_TEST_VALUE", "fallback"))
}

func TestTrimToNil(t *testing.T) {
	assert.Nil(t, TrimToNil(""))
	assert.Nil(t, TrimToNil("   "))

	got := TrimToNil("  maria@email.com ")
	require.NotNil(t, got)
	assert.Equal(t, "maria@email.com", *got)
}
