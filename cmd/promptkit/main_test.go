package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cosmicfriends/promptkit/internal/testutil"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	return rootCmd.Execute()
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteCharacters(t, dir)

	t.Run("directory", func(t *testing.T) {
		assert.NoError(t, run(t, "validate", dir, "-o", "json"))
	})

	t.Run("single file", func(t *testing.T) {
		assert.NoError(t, run(t, "validate", filepath.Join(dir, "nova.yaml"), "-o", "text"))
	})

	t.Run("invalid file", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"identity": {}}`), 0o644))

		err := run(t, "validate", dir, bad, "-o", "json")
		assert.ErrorIs(t, err, errInvalidRecords)
	})

	t.Run("missing path", func(t *testing.T) {
		err := run(t, "validate", filepath.Join(dir, "nope.json"), "-o", "json")
		assert.ErrorIs(t, err, errInvalidRecords)
	})
}

func TestConfigInit(t *testing.T) {
	h := t.TempDir()

	require.NoError(t, run(t, "config", "init", "--home", h))
	assert.FileExists(t, filepath.Join(h, "config.yaml"))
	assert.DirExists(t, filepath.Join(h, "characters"))

	assert.Error(t, run(t, "config", "init", "--home", h))
	assert.NoError(t, run(t, "config", "init", "--home", h, "--force"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, "json", nil).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	newLogger(&buf, "text", nil).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")
}
