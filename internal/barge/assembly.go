// Package barge implements the buoyancy and tilt physics of a modular
// floating barge: draft from weight and geometry, the area-weighted
// center of flotation across pontoons, a small-angle tilt response to
// the primary cargo item's offset, and the rigid rotation that keeps
// pontoons and items on one coherent tilted plane.
package barge

import (
	"barge-simulator/internal/fluid"
	"barge-simulator/internal/geometry/vector"
)

// MaxTilt is the tilt reached at full damping-normalized offset,
// in radians (~2.9 degrees).
const MaxTilt = 0.05

// Tilt damping divisors. The response along Z (driven by the X offset)
// is deliberately gentler than the response along X.
const (
	tiltDampingX = 10.0
	tiltDampingZ = 5.0
)

// Config carries the defaults a new assembly hands to every pontoon it
// creates.
type Config struct {
	Fluid         fluid.Fluid
	PontoonWidth  float64
	PontoonHeight float64
	PontoonDepth  float64
	PontoonWeight float64
}

// DefaultConfig returns the stock pontoon: a 20x10 deck footprint
// floating in freshwater.
func DefaultConfig() Config {
	return Config{
		Fluid:         fluid.Freshwater(),
		PontoonWidth:  20,
		PontoonHeight: 5,
		PontoonDepth:  10,
		PontoonWeight: 50000,
	}
}

// Assembly owns the pontoons and cargo items exclusively and keeps them
// on a consistent tilted plane. It has no independent tilt state: the
// center of flotation and both tilt angles are recomputed from scratch
// by Update after every mutation.
type Assembly struct {
	cfg Config

	pontoons []*Pontoon
	items    []*Item

	// center of flotation; Y is always 0 by construction.
	center vector.Vec3

	tiltX float64
	tiltZ float64

	nextID int
}

// New creates an empty assembly. Non-positive config values fall back
// to the defaults.
func New(cfg Config) *Assembly {
	def := DefaultConfig()
	if cfg.Fluid.Density <= 0 {
		cfg.Fluid = def.Fluid
	}
	if !validDimension(cfg.PontoonWidth) {
		cfg.PontoonWidth = def.PontoonWidth
	}
	if !validDimension(cfg.PontoonHeight) {
		cfg.PontoonHeight = def.PontoonHeight
	}
	if !validDimension(cfg.PontoonDepth) {
		cfg.PontoonDepth = def.PontoonDepth
	}
	if !validDimension(cfg.PontoonWeight) {
		cfg.PontoonWeight = def.PontoonWeight
	}
	return &Assembly{cfg: cfg}
}

// AddPontoon creates a pontoon with default geometry and places it
// edge-to-edge after the most recently added one along the X axis (the
// first pontoon sits at the origin). The placement is stored as both
// current and rest position, and the center of flotation is recomputed.
func (a *Assembly) AddPontoon() *Pontoon {
	p := &Pontoon{
		ID:           a.nextID,
		Width:        a.cfg.PontoonWidth,
		Height:       a.cfg.PontoonHeight,
		Depth:        a.cfg.PontoonDepth,
		Weight:       a.cfg.PontoonWeight,
		FluidDensity: a.cfg.Fluid.Density,
	}
	a.nextID++
	p.settle()

	if n := len(a.pontoons); n > 0 {
		prev := a.pontoons[n-1]
		p.Rest.X = prev.Rest.X + prev.Width/2 + p.Width/2
		p.Rest.Z = prev.Rest.Z
	}
	p.Position = p.Rest

	a.pontoons = append(a.pontoons, p)
	a.calculateCenterFlotation()
	return p
}

// AddItem creates a cargo item over the current center of flotation,
// resting on pontoon 0's untilted deck. Tilt is not applied here; the
// next Update settles the item onto the tilted plane.
func (a *Assembly) AddItem() *Item {
	it := &Item{
		Width:  ItemWidth,
		Height: ItemHeight,
		Depth:  ItemDepth,
		Position: vector.Vec3{
			X: a.center.X,
			Y: a.deckRestTop() + ItemHeight/2,
			Z: a.center.Z,
		},
	}
	a.items = append(a.items, it)
	return it
}

// MoveItem sets an item's horizontal position, clamped so the item
// stays at least one unit inside pontoon 0's deck edge, then runs the
// full update pipeline. Out-of-range indices are ignored.
func (a *Assembly) MoveItem(i int, x, z float64) {
	if i < 0 || i >= len(a.items) || len(a.pontoons) == 0 {
		return
	}
	p0 := a.pontoons[0]
	it := a.items[i]
	it.Position.X = clamp(x, p0.Width/2-1)
	it.Position.Z = clamp(z, p0.Depth/2-1)
	a.Update()
}

// SetPontoonGeometry applies a partial edit to the pontoon with the
// given ID; nil fields are left unchanged and invalid values are
// dropped field by field. The pontoon is re-settled at its new draft
// and the whole assembly updated. Unknown IDs are ignored.
func (a *Assembly) SetPontoonGeometry(id int, width, height, depth, weight *float64) {
	p := a.pontoonByID(id)
	if p == nil {
		return
	}
	p.SetGeometry(value(width, p.Width), value(height, p.Height), value(depth, p.Depth))
	if weight != nil {
		p.SetWeight(*weight)
	}
	p.settle()
	a.Update()
}

// Update drives the assembly to a consistent state: center of
// flotation, then tilt, then pontoon placement, then item placement.
// The order matters — tilt needs a fresh center, placement needs fresh
// tilt. Calling Update twice without an intervening mutation yields
// identical state.
func (a *Assembly) Update() {
	a.calculateCenterFlotation()
	a.calculateTilt()
	a.applyTiltToPontoons()
	a.updateItemPositions()
}

// CenterOfFlotation returns the area-weighted centroid of the pontoon
// footprints. Its Y component is always 0.
func (a *Assembly) CenterOfFlotation() vector.Vec3 { return a.center }

// Tilt returns the current tilt angles about the X and Z axes.
func (a *Assembly) Tilt() (tiltX, tiltZ float64) { return a.tiltX, a.tiltZ }

// Area returns the combined horizontal footprint of all pontoons.
func (a *Assembly) Area() float64 {
	var sum float64
	for _, p := range a.pontoons {
		sum += p.Width * p.Depth
	}
	return sum
}

// Pontoon returns the i-th pontoon in placement order, or nil.
func (a *Assembly) Pontoon(i int) *Pontoon {
	if i < 0 || i >= len(a.pontoons) {
		return nil
	}
	return a.pontoons[i]
}

// Item returns the i-th item in creation order, or nil.
func (a *Assembly) Item(i int) *Item {
	if i < 0 || i >= len(a.items) {
		return nil
	}
	return a.items[i]
}

// PontoonCount returns the number of pontoons.
func (a *Assembly) PontoonCount() int { return len(a.pontoons) }

// ItemCount returns the number of items.
func (a *Assembly) ItemCount() int { return len(a.items) }

// calculateCenterFlotation recomputes the footprint-weighted centroid
// of the pontoons' horizontal placement. The rest coordinates are the
// authoritative horizontal placement; reading the tilted positions
// instead would feed the tilt lean back into the centroid and make
// consecutive updates drift. With no pontoons the previous center is
// retained.
func (a *Assembly) calculateCenterFlotation() {
	if len(a.pontoons) == 0 {
		return
	}
	var sumX, sumZ, area float64
	for _, p := range a.pontoons {
		fp := p.Width * p.Depth
		sumX += p.Rest.X * fp
		sumZ += p.Rest.Z * fp
		area += fp
	}
	a.center = vector.Vec3{X: sumX / area, Y: 0, Z: sumZ / area}
}

// calculateTilt derives both tilt angles from item 0's horizontal
// offset. Additional items do not influence tilt. With no items the
// assembly stays level.
func (a *Assembly) calculateTilt() {
	if len(a.items) == 0 {
		a.tiltX, a.tiltZ = 0, 0
		return
	}
	it := a.items[0]
	offsetX := it.Position.X - a.center.X
	offsetZ := it.Position.Z - a.center.Z
	a.tiltZ = (offsetX / tiltDampingX) * MaxTilt
	a.tiltX = -(offsetZ / tiltDampingZ) * MaxTilt
}

// applyTiltToPontoons rotates every pontoon's rest position about the
// center of flotation, Z axis first in the X/Y plane, then X axis in
// the Y/Z plane. The visual rotation carries the opposite sign of the
// computed tilt.
func (a *Assembly) applyTiltToPontoons() {
	for _, p := range a.pontoons {
		rel := p.Rest.Sub(a.center)
		p.Position = rel.RotateZ(a.tiltZ).RotateX(a.tiltX).Add(a.center)
		p.Rotation = Rotation{X: -a.tiltX, Z: -a.tiltZ}
	}
}

// updateItemPositions re-derives each item's vertical position and
// rotation from the tilted deck plane. The item's own X/Z stay exactly
// as the user set them; only the deck surface point under the item is
// rotated.
func (a *Assembly) updateItemPositions() {
	surfaceY := a.deckRestTop() - a.center.Y
	for _, it := range a.items {
		surface := vector.Vec3{
			X: it.Position.X - a.center.X,
			Y: surfaceY,
			Z: it.Position.Z - a.center.Z,
		}
		rotated := surface.RotateZ(a.tiltZ).RotateX(a.tiltX)
		it.Position.Y = rotated.Y + it.Height/2
		it.Rotation = Rotation{X: -a.tiltX, Z: -a.tiltZ}
	}
}

// deckRestTop is the untilted deck height items rest on. With no
// pontoons the fluid surface stands in.
func (a *Assembly) deckRestTop() float64 {
	if len(a.pontoons) == 0 {
		return 0
	}
	return a.pontoons[0].restTop()
}

func (a *Assembly) pontoonByID(id int) *Pontoon {
	for _, p := range a.pontoons {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func clamp(v, limit float64) float64 {
	if limit < 0 {
		limit = 0
	}
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

func value(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}
