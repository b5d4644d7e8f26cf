package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SCORECACHE_HTTP_ADDR", ":9999")
	t.Setenv("SCORECACHE_CAPACITY_BYTES", "4096")
	t.Setenv("SCORECACHE_BASE", "1.01")
	t.Setenv("SCORECACHE_MISS_TRACKING", "true")
	t.Setenv("SCORECACHE_METRICS", "off")
	t.Setenv("SCORECACHE_OLDSCORE_LIMIT", "not-a-number")

	cfg := loadConfig()
	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, int64(4096), cfg.Capacity)
	assert.Equal(t, 1.01, cfg.Base)
	assert.True(t, cfg.MissTracking)
	assert.False(t, cfg.HitReinforcement)
	assert.False(t, cfg.Metrics)
	assert.Zero(t, cfg.OldScoreLimit)
}
