package model

import (
	"fmt"

	"github.com/piwi3910/ShaperCut/internal/dimension"
)

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to paths that carry no data of their own
	DefaultUnits       dimension.Unit       `json:"default_units"`
	DefaultBitDiameter dimension.RealString `json:"default_bit_diameter"`
	DefaultCutDepth    dimension.RealString `json:"default_cut_depth"`
	DefaultCutType     CutType              `json:"default_cut_type"`

	// Toolpath engine tuning
	SampleStep     float64 `json:"sample_step"`     // Arc length between samples, drawing units
	ClipScale      float64 `json:"clip_scale"`      // Scale applied before integer clipping
	CleanTolerance float64 `json:"clean_tolerance"` // Vertex merge distance as a fraction of ClipScale
	CircleSegments int     `json:"circle_segments"` // Vertices of the bit outline

	RecentJobs []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultUnits:       dimension.Inch,
		DefaultBitDiameter: "0.25 in",
		DefaultCutDepth:    "0.125 in",
		DefaultCutType:     CutOnline,
		SampleStep:         1,
		ClipScale:          10,
		CleanTolerance:     0.1,
		CircleSegments:     128,
		RecentJobs:         []string{},
	}
}

// Validate checks that every field holds a usable value.
func (c AppConfig) Validate() error {
	if _, err := dimension.AssertRealUnit(string(c.DefaultUnits)); err != nil {
		return fmt.Errorf("default units: %w", err)
	}
	if c.DefaultBitDiameter != "" {
		if _, err := dimension.AssertRealString(string(c.DefaultBitDiameter), true); err != nil {
			return fmt.Errorf("default bit diameter: %w", err)
		}
	}
	if c.DefaultCutDepth != "" {
		if _, err := dimension.AssertRealString(string(c.DefaultCutDepth), true); err != nil {
			return fmt.Errorf("default cut depth: %w", err)
		}
	}
	if _, err := ParseCutType(string(c.DefaultCutType)); err != nil {
		return fmt.Errorf("default cut type: %w", err)
	}
	if c.SampleStep <= 0 {
		return fmt.Errorf("sample step must be positive, got %v", c.SampleStep)
	}
	if c.ClipScale < 1 {
		return fmt.Errorf("clip scale must be at least 1, got %v", c.ClipScale)
	}
	if c.CleanTolerance < 0 {
		return fmt.Errorf("clean tolerance must not be negative, got %v", c.CleanTolerance)
	}
	if c.CircleSegments < 8 {
		return fmt.Errorf("circle segments must be at least 8, got %d", c.CircleSegments)
	}
	return nil
}

// Defaults returns the path data applied to fields a path leaves unset.
func (c AppConfig) Defaults() PathData {
	return PathData{
		CutDepth:    c.DefaultCutDepth,
		CutType:     c.DefaultCutType,
		BitDiameter: c.DefaultBitDiameter,
	}
}

// SetDefaults replaces the path defaults with d.
func (c *AppConfig) SetDefaults(d PathData) {
	c.DefaultCutDepth = d.CutDepth
	c.DefaultCutType = d.CutType
	c.DefaultBitDiameter = d.BitDiameter
}

// AddRecentJob moves path to the front of the recent jobs list, keeping at
// most limit entries.
func (c *AppConfig) AddRecentJob(path string, limit int) {
	jobs := []string{path}
	for _, p := range c.RecentJobs {
		if p != path {
			jobs = append(jobs, p)
		}
	}
	if limit > 0 && len(jobs) > limit {
		jobs = jobs[:limit]
	}
	c.RecentJobs = jobs
}
