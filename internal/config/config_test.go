package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.BEL.Version)
	assert.True(t, cfg.BEL.Memoize)
	assert.Equal(t, "reactome.db", cfg.Cache.Path)
	assert.Equal(t, 60*time.Second, cfg.Timeout())
}

func TestLoadConfig_FileAndEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
reactome:
  base_url: http://localhost:9999/ws
  offline: true
bel:
  version: 2
  memoize: true
species:
  - Homo sapiens
pathways:
  - Metabolism
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9999/ws", cfg.Reactome.BaseURL)
	assert.True(t, cfg.Reactome.Offline)
	assert.Equal(t, 2, cfg.BEL.Version)
	assert.True(t, cfg.BEL.Memoize)
	assert.Equal(t, []string{"Homo sapiens"}, cfg.Species)
	assert.Equal(t, []string{"Metabolism"}, cfg.Pathways)
	assert.Equal(t, "bad_evidences.json", cfg.Output.BadEvidence, "unset keys keep defaults")

	t.Setenv("REACTOME2BEL_DB", "/tmp/other.db")
	t.Setenv("REACTOME2BEL_BEL_VERSION", "1")
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.db", cfg.Cache.Path)
	assert.Equal(t, 1, cfg.BEL.Version)
}

func TestLoadConfig_InvalidVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bel:\n  version: 3\n"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)

	t.Setenv("REACTOME2BEL_BEL_VERSION", "two")
	_, err = LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
