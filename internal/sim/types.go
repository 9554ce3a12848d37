package sim

import (
	"time"

	"barge-simulator/internal/barge"
	"barge-simulator/internal/geometry/vector"
)

// Position is a JSON-friendly projection of a scene position.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func position(v vector.Vec3) Position {
	return Position{X: v.X, Y: v.Y, Z: v.Z}
}

// PontoonState is a snapshot of one pontoon for the presentation layer.
type PontoonState struct {
	ID     int     `json:"id"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
	Weight float64 `json:"weight"`
	Draft  float64 `json:"draft"`

	Position Position       `json:"position"`
	Rotation barge.Rotation `json:"rotation"`
}

// ItemState is a snapshot of one cargo item.
type ItemState struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`

	Position Position       `json:"position"`
	Rotation barge.Rotation `json:"rotation"`
}

// BargeState is the full assembly snapshot published once per tick and
// returned by state queries. It is everything a 3D frontend needs to
// draw the tilted barge.
type BargeState struct {
	Pontoons []PontoonState `json:"pontoons"`
	Items    []ItemState    `json:"items"`

	Center Position `json:"centerOfFlotation"`
	TiltX  float64  `json:"tiltX"`
	TiltZ  float64  `json:"tiltZ"`
	Area   float64  `json:"area"`

	TS   time.Time `json:"ts"`
	Tick uint64    `json:"tick"`
}
