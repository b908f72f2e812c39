package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "gemini", cfg.BackendProvider)
	assert.True(t, cfg.EnableMetrics)
}

func TestLoadConfigNumericEnvOverrides(t *testing.T) {
	t.Setenv("PROPAGATION_DEPTH", "5")
	t.Setenv("MAX_WORKER_ROLES", "2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	dc := cfg.DomainConfig()
	assert.Equal(t, 5, dc.PropagationDepth)
	assert.Equal(t, 2, dc.MaxWorkerRoles)
}

func TestLoadConfigMalformedNumericEnvKeepsDefault(t *testing.T) {
	t.Setenv("PROPAGATION_DEPTH", "deep")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Zero(t, cfg.Domain.PropagationDepth)
}

func TestLoadConfigYamlOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_address: \":9090\"\ndomain:\n  decay_factor: 0.5\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.InDelta(t, 0.5, cfg.DomainConfig().DecayFactor, 1e-9)
}

func TestValidateRejectsUnknownProvider(t *testing.T) {
	t.Setenv("BACKEND_PROVIDER", "oracle")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateRequiresKeyInProduction(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("BACKEND_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}
