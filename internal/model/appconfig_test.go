package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

func TestDefaultAppConfigIsValid(t *testing.T) {
	cfg := DefaultAppConfig()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, dimension.Inch, cfg.DefaultUnits)
	assert.Equal(t, CutOnline, cfg.DefaultCutType)
	assert.NotNil(t, cfg.RecentJobs)
}

func TestAppConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*AppConfig)
	}{
		{"units", func(c *AppConfig) { c.DefaultUnits = "px" }},
		{"bit", func(c *AppConfig) { c.DefaultBitDiameter = "quarter" }},
		{"depth", func(c *AppConfig) { c.DefaultCutDepth = "-1 in" }},
		{"cut type", func(c *AppConfig) { c.DefaultCutType = "engrave" }},
		{"sample step", func(c *AppConfig) { c.SampleStep = 0 }},
		{"scale", func(c *AppConfig) { c.ClipScale = 0.5 }},
		{"tolerance", func(c *AppConfig) { c.CleanTolerance = -1 }},
		{"segments", func(c *AppConfig) { c.CircleSegments = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultAppConfig()
			tt.modify(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAddRecentJob(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentJob("a", 3)
	cfg.AddRecentJob("b", 3)
	cfg.AddRecentJob("c", 3)
	cfg.AddRecentJob("a", 3)
	assert.Equal(t, []string{"a", "c", "b"}, cfg.RecentJobs)

	cfg.AddRecentJob("d", 3)
	assert.Equal(t, []string{"d", "a", "c"}, cfg.RecentJobs)
}
