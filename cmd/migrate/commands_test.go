package main

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.ElementsMatch(t, []string{"up", "down", "down-all", "version", "force"}, names)
}

func TestForceCmd_RequiresNumericVersion(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"force", "abc"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version")
}

func TestForceCmd_RequiresOneArg(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"force"})

	assert.Error(t, root.Execute())
}

func TestIgnoreNoChange(t *testing.T) {
	assert.NoError(t, ignoreNoChange(nil))
	assert.NoError(t, ignoreNoChange(migrate.ErrNoChange))

	boom := errors.New("boom")
	assert.ErrorIs(t, ignoreNoChange(boom), boom)
}
