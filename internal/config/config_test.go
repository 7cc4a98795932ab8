package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/jparse/internal/langver"
)

func TestLoadKDL_MissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadKDL(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadKDL_ParsesKnownFields(t *testing.T) {
	dir := t.TempDir()
	body := `
version "V17"
max-input-bytes 1048576
arena-capacity-factor 0.75
recursion-limit 500
metrics #true
workers 4
include "**/*.java" "**/*.kt"
exclude "**/build/**"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".jparse.kdl"), []byte(body), 0o644))

	cfg, err := LoadKDL(dir)
	require.NoError(t, err)

	assert.Equal(t, langver.V17, cfg.Version)
	assert.Equal(t, 1048576, cfg.MaxInputBytes)
	assert.Equal(t, 0.75, cfg.ArenaCapacityFactor)
	assert.Equal(t, 500, cfg.RecursionLimit)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, []string{"**/*.java", "**/*.kt"}, cfg.Include)
	assert.Equal(t, []string{"**/build/**"}, cfg.Exclude)
}

func TestValidateAndSetDefaults_FillsZeroWorkers(t *testing.T) {
	cfg := Default()
	cfg.Workers = 0
	require.NoError(t, ValidateConfig(&cfg))
	assert.Greater(t, cfg.Workers, 0)
}

func TestValidateAndSetDefaults_RejectsNonPositiveMaxInputBytes(t *testing.T) {
	cfg := Default()
	cfg.MaxInputBytes = 0
	assert.Error(t, ValidateConfig(&cfg))
}

func TestValidateAndSetDefaults_RejectsNegativeWorkers(t *testing.T) {
	cfg := Default()
	cfg.Workers = -1
	assert.Error(t, ValidateConfig(&cfg))
}
