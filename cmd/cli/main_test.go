package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/sfegridgo/internal/cli"
)

func TestRun(t *testing.T) {
	t.Run("help exits cleanly", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, run(&out, []string{"-h"}))
		assert.Contains(t, out.String(), "Usage:")
	})

	t.Run("bad flag returns exit error", func(t *testing.T) {
		var out bytes.Buffer
		err := run(&out, []string{"-no-such-flag"})
		require.Error(t, err)

		var exitErr *cli.ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, 2, exitErr.Code)
	})

	t.Run("missing config file fails", func(t *testing.T) {
		var out bytes.Buffer
		err := run(&out, []string{"-config", "does-not-exist.hcl"})
		require.Error(t, err)
	})
}
