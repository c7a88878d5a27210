package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("STATS_INTERVAL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.StatsInterval)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STATS_INTERVAL", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, 30*time.Second, cfg.StatsInterval)
}

func TestLoadConfig_BadInterval(t *testing.T) {
	t.Setenv("STATS_INTERVAL", "soon")

	_, err := LoadConfig()
	require.Error(t, err)
}
