// Package fluid describes the fluid the barge floats in.
package fluid

import (
	"fmt"
	"strings"
)

// Fluid holds the hydrostatic parameters the buoyancy model needs.
// Density is in weight units per cubic scene unit; only the ratio
// weight/density ever enters the draft calculation, so any consistent
// unit system works.
type Fluid struct {
	Name    string
	Density float64
}

// Freshwater returns the default fluid (density 1000).
func Freshwater() Fluid {
	return Fluid{Name: "freshwater", Density: 1000}
}

// Seawater returns standard seawater (density 1025).
func Seawater() Fluid {
	return Fluid{Name: "seawater", Density: 1025}
}

// ByName resolves a preset fluid by its name, case-insensitively.
func ByName(name string) (Fluid, error) {
	switch strings.ToLower(name) {
	case "freshwater", "water", "":
		return Freshwater(), nil
	case "seawater":
		return Seawater(), nil
	default:
		return Fluid{}, fmt.Errorf("unknown fluid %q", name)
	}
}

// WithDensity returns a copy of f with an explicit density override.
// Non-positive overrides are ignored and f is returned unchanged.
func (f Fluid) WithDensity(density float64) Fluid {
	if density <= 0 {
		return f
	}
	f.Density = density
	return f
}
