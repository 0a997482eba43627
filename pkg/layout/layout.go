// Package layout projects scored components onto map canvas coordinates.
// Evolution runs along the X axis (Genesis at the left, Commodity at the
// right) and visibility along the Y axis with the most visible components
// at the top.
package layout

import (
	"github.com/dd0wney/cluso-strategy/pkg/wardley"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width   float64 // Canvas width
	Height  float64 // Canvas height
	Padding float64 // Padding from edges
}

// DefaultLayoutConfig returns the standard canvas geometry.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:   800,
		Height:  600,
		Padding: 50,
	}
}

// withDefaults fills unset dimensions with the standard canvas values.
func (cfg LayoutConfig) withDefaults() LayoutConfig {
	def := DefaultLayoutConfig()
	if cfg.Width <= 0 {
		cfg.Width = def.Width
	}
	if cfg.Height <= 0 {
		cfg.Height = def.Height
	}
	if cfg.Padding == 0 {
		cfg.Padding = def.Padding
	}
	return cfg
}

// ComputeLayout maps each component to a canvas position keyed by its
// display name. Scores are clamped to [0, 1] before projection so every
// position lands inside the padded canvas. Components without a name are
// skipped.
func ComputeLayout(components []wardley.Component, cfg LayoutConfig) map[string]Position {
	cfg = cfg.withDefaults()

	innerWidth := cfg.Width - 2*cfg.Padding
	innerHeight := cfg.Height - 2*cfg.Padding
	if innerWidth < 0 {
		innerWidth = 0
	}
	if innerHeight < 0 {
		innerHeight = 0
	}

	positions := make(map[string]Position, len(components))
	for _, c := range components {
		if wardley.Key(c.Name) == "" {
			continue
		}
		evolution := wardley.Clamp01(c.Evolution)
		visibility := wardley.Clamp01(c.Visibility)
		positions[c.Name] = Position{
			X: cfg.Padding + evolution*innerWidth,
			Y: cfg.Padding + (1-visibility)*innerHeight,
		}
	}

	return positions
}
