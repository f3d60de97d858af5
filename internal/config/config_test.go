package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelajeffers/simulation-power-analysis/internal/errors"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(1563), cfg.Seed)
	assert.Equal(t, 10000, cfg.Iterations)
	assert.Equal(t, 10, cfg.GroupSize)
	assert.Equal(t, 3, cfg.DoseGroups)
	assert.Equal(t, 1, cfg.Workers)
	assert.Equal(t, 0.85, cfg.TopEffect)
	assert.Equal(t, 2.0, cfg.TopVariance)
	assert.Equal(t, "decreasing", cfg.Direction)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("POWERSIM_SEED", "42")
	t.Setenv("POWERSIM_ITERATIONS", "500")
	t.Setenv("POWERSIM_GROUP_SIZE", "5")
	t.Setenv("POWERSIM_WORKERS", "8")
	t.Setenv("POWERSIM_DIRECTION", "increasing")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 500, cfg.Iterations)
	assert.Equal(t, 5, cfg.GroupSize)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "increasing", cfg.Direction)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non-numeric seed", "POWERSIM_SEED", "not-a-number"},
		{"zero iterations", "POWERSIM_ITERATIONS", "0"},
		{"negative group size", "POWERSIM_GROUP_SIZE", "-3"},
		{"zero workers", "POWERSIM_WORKERS", "0"},
		{"bad direction", "POWERSIM_DIRECTION", "sideways"},
		{"zero top variance", "POWERSIM_TOP_VARIANCE", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
