package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	cfg := Config{LayoutFile: "custom.yml", Output: OutputYAML, Derived: false, Warnings: true}

	require.NoError(t, SaveConfig(path, cfg))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte(`{"output": "yaml"}`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, OutputYAML, cfg.Output)
	assert.True(t, cfg.Derived)
	assert.True(t, cfg.Warnings)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"output":`), 0644))
	_, err := LoadConfig(badJSON)
	assert.Error(t, err)

	badOutput := filepath.Join(dir, "output.json")
	require.NoError(t, os.WriteFile(badOutput, []byte(`{"output": "xml"}`), 0644))
	_, err = LoadConfig(badOutput)
	assert.Error(t, err)
}

func TestSaveConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	err := SaveConfig(path, Config{Output: "csv"})
	assert.Error(t, err)
	assert.NoFileExists(t, path)
}
