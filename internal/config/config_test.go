package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spf13/cobra"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Render.Plain)
	assert.False(t, cfg.Render.ShowHidden)
	assert.Empty(t, cfg.Pricing.LongContextThresholds)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
log:
  level: debug
render:
  plain: true
pricing:
  long_context_thresholds:
    claude-sonnet-4-5: 150000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cmd := &cobra.Command{}
	cmd.Flags().String("config", path, "")

	cfg, err := Load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Render.Plain)
	assert.Equal(t, 150000, cfg.Pricing.LongContextThresholds["claude-sonnet-4-5"])
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EMAKI_LOG_LEVEL", "warn")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "/nope/config.yaml", "")

	_, err := Load(cmd)
	require.Error(t, err)
}
