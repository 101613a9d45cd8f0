package test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nerix-game/go-nerix/integration"
)

func TestPresets_lookup(t *testing.T) {
	for _, name := range []string{"dev", "prod", "archive", "default"} {
		cfg, err := integration.GetPresetByName(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, cfg.Name)
		assert.Positive(t, cfg.HistoryRetention)
	}

	_, err := integration.GetPresetByName("bogus")
	require.Error(t, err)
}

func TestPresets_profiles(t *testing.T) {
	dev := integration.DevPreset()
	assert.True(t, dev.EnableMetrics)
	assert.True(t, dev.PrettyLogs)

	prod := integration.ProdPreset()
	assert.True(t, prod.EnableMetrics)
	assert.False(t, prod.EnableTracing)
	assert.False(t, prod.PrettyLogs)
	assert.Greater(t, prod.HistoryRetention, dev.HistoryRetention)

	archive := integration.ArchivePreset()
	assert.Greater(t, archive.HistoryRetention, prod.HistoryRetention)
}

func TestPresets_applyMerges(t *testing.T) {
	target := integration.DefaultPreset()
	integration.ApplyPreset(&target, integration.ProdPreset())
	assert.Equal(t, "prod", target.Name)
	assert.Equal(t, 4096, target.HistoryRetention)
	assert.True(t, target.EnableMetrics)

	// zero values in a partial preset leave the target untouched
	integration.ApplyPreset(&target, integration.PresetConfig{EnableMetrics: true})
	assert.Equal(t, "prod", target.Name)
	assert.Equal(t, 4096, target.HistoryRetention)
}
