package userconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "gocfg.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gocfg.yaml")
	cfg := &Config{
		Toolchain:     "gcc",
		Mode:          "debug",
		Prefix:        "/usr/local",
		Verbose:       true,
		LogCategories: map[string]bool{"probe": true, "makefile": false},
	}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gocfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("toolchain: [unterminated"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
