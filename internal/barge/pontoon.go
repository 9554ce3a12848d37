package barge

import (
	"math"

	"barge-simulator/internal/geometry/vector"
)

// Rotation holds the visual rotation applied to a pontoon or item,
// in radians about the X and Z axes.
type Rotation struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// Pontoon is a single buoyant rectangular section of the barge.
// Rest is the untilted equilibrium placement; Position and Rotation are
// derived from Rest by the assembly whenever the tilt changes.
type Pontoon struct {
	ID int

	Width  float64
	Height float64
	Depth  float64
	Weight float64

	// FluidDensity is the density of the fluid the pontoon displaces.
	FluidDensity float64

	Rest     vector.Vec3
	Position vector.Vec3
	Rotation Rotation
}

// Draft returns the equilibrium submersion depth: the displaced volume
// (weight / fluid density) spread over the horizontal footprint.
func (p *Pontoon) Draft() float64 {
	return (p.Weight / p.FluidDensity) / (p.Width * p.Depth)
}

// SetGeometry updates the pontoon's dimensions. Each dimension is
// validated independently; a non-positive or non-finite value is
// dropped and the previous value retained. The caller must re-derive
// the rest position afterward, since draft depends on the footprint.
func (p *Pontoon) SetGeometry(width, height, depth float64) {
	if validDimension(width) {
		p.Width = width
	}
	if validDimension(height) {
		p.Height = height
	}
	if validDimension(depth) {
		p.Depth = depth
	}
}

// SetWeight updates the pontoon's weight, subject to the same
// validation as SetGeometry.
func (p *Pontoon) SetWeight(weight float64) {
	if validDimension(weight) {
		p.Weight = weight
	}
}

// restTop is the Y coordinate of the deck surface at rest.
func (p *Pontoon) restTop() float64 {
	return p.Rest.Y + p.Height/2
}

// settle re-derives the equilibrium vertical position from the current
// draft, keeping the horizontal rest placement.
func (p *Pontoon) settle() {
	p.Rest.Y = -p.Draft() + p.Height/2
}

func validDimension(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
