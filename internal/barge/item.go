package barge

import "barge-simulator/internal/geometry/vector"

// Cargo item catalogue dimensions. All items share one size; only the
// position varies.
const (
	ItemWidth  = 2.0
	ItemHeight = 2.0
	ItemDepth  = 2.0
)

// Item is a movable cargo load. Its horizontal position is the free
// variable under user control; the vertical position and rotation are
// derived by the assembly so the item rests on the tilted deck.
type Item struct {
	Width  float64
	Height float64
	Depth  float64

	Position vector.Vec3
	Rotation Rotation
}
