package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file should be written")

	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "sonar.db", cfg.DBFile)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, int64(1), cfg.NodeID)
	assert.True(t, cfg.SeedJobs)
	assert.Equal(t, filepath.Join(dir, "sonar.db"), cfg.DBPath())
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("SONAR_LOG_LEVEL", "debug")
	t.Setenv("SONAR_SEED_JOBS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.SeedJobs)
}

func TestSetPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, Set("db_file", "other.db"))
	assert.Equal(t, "other.db", Get("db_file"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.DBFile)
}

func TestSetRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Load(path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		key   string
		value string
	}{
		{"node_id", "4096"},
		{"node_id", "-1"},
		{"node_id", "abc"},
		{"seed_jobs", "maybe"},
		{"log_format", "xml"},
		{"log_level", "verbose"},
		{"db_file", " "},
		{"unknown", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			assert.ErrorIs(t, Set(tt.key, tt.value), ErrInvalidValue)
		})
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "rejected values are not written")
}

func TestSetStoresTypedValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	_, err := Load(path)
	require.NoError(t, err)

	require.NoError(t, Set("node_id", "1023"))
	require.NoError(t, Set("seed_jobs", "false"))
	require.NoError(t, Set("log_format", "JSON"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(MaxNodeID), cfg.NodeID)
	assert.False(t, cfg.SeedJobs)
	assert.Equal(t, "json", cfg.LogFormat)
}
