package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tlcorerc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: true\ncolor: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.False(t, cfg.Color)
}

func TestLoad_MalformedYAMLErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".tlcorerc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("debug: [this is not a bool"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
