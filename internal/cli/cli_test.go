package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("no arguments yields defaults", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, shouldExit, err := Parse(nil, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		require.NotNil(t, cfg)
		assert.Empty(t, cfg.ConfigPath)
		assert.Empty(t, cfg.OutputDir)
		assert.False(t, cfg.SeedSet)
		assert.Zero(t, cfg.Workers)
		assert.False(t, cfg.Scripts)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("all flags", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		args := []string{
			"-config", "study.hcl",
			"-out", "results",
			"-seed", "7",
			"-workers", "4",
			"-scripts",
			"-log-format", "JSON",
			"-log-level", "DEBUG",
		}
		cfg, shouldExit, err := Parse(args, &out)
		require.NoError(t, err)
		assert.False(t, shouldExit)
		assert.Equal(t, "study.hcl", cfg.ConfigPath)
		assert.Equal(t, "results", cfg.OutputDir)
		assert.True(t, cfg.SeedSet)
		assert.Equal(t, uint64(7), cfg.Seed)
		assert.Equal(t, 4, cfg.Workers)
		assert.True(t, cfg.Scripts)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("seed zero is an explicit seed", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-seed", "0"}, &out)
		require.NoError(t, err)
		assert.True(t, cfg.SeedSet)
		assert.Zero(t, cfg.Seed)
	})

	t.Run("sfe flag selects evaluation mode", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, _, err := Parse([]string{"-sfe", "runs"}, &out)
		require.NoError(t, err)
		assert.Equal(t, "runs", cfg.SFEDir)
	})

	t.Run("help requests a clean exit", func(t *testing.T) {
		t.Parallel()
		var out bytes.Buffer
		cfg, shouldExit, err := Parse([]string{"-h"}, &out)
		require.NoError(t, err)
		assert.True(t, shouldExit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("errors", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			args []string
		}{
			{name: "unknown flag", args: []string{"-bogus"}},
			{name: "positional argument", args: []string{"generate"}},
			{name: "invalid log format", args: []string{"-log-format", "xml"}},
			{name: "invalid log level", args: []string{"-log-level", "trace"}},
			{name: "negative workers", args: []string{"-workers", "-2"}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()
				var out bytes.Buffer
				cfg, shouldExit, err := Parse(tc.args, &out)
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.False(t, shouldExit)

				var exitErr *ExitError
				require.ErrorAs(t, err, &exitErr)
				assert.Equal(t, 2, exitErr.Code)
			})
		}
	})
}
