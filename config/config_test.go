package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasNoDisabledAlgorithms(t *testing.T) {
	cfg := Default()
	assert.False(t, cfg.IsDisabled("Haroohie"))
	assert.Equal(t, "bmh", cfg.Szs.DefaultEncoder)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	data := []byte(`
strip:
  disabled: [Haroohie, DracoDegen]
  workerpool: 4
`)
	cfg, err := Load(data)
	require.NoError(t, err)
	assert.True(t, cfg.IsDisabled("Haroohie"))
	assert.True(t, cfg.IsDisabled("DracoDegen"))
	assert.False(t, cfg.IsDisabled("MeshOptimizer"))
	assert.Equal(t, 4, cfg.Strip.WorkerPool)
	assert.Equal(t, "bmh", cfg.Szs.DefaultEncoder) // untouched, kept from Default()
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load([]byte("strip: [this is not a mapping"))
	require.Error(t, err)
}
