package sim

import "time"

type CommandType string

const (
	CmdAddPontoon  CommandType = "add-pontoon"
	CmdAddItem     CommandType = "add-item"
	CmdMoveItem    CommandType = "move-item"
	CmdSetGeometry CommandType = "set-geometry"
)

type Command interface {
	Type() CommandType
	ReceivedAt() time.Time
}

// AddPontoonCommand appends a new default pontoon after the last one.
type AddPontoonCommand struct{ At time.Time }

func (c AddPontoonCommand) Type() CommandType     { return CmdAddPontoon }
func (c AddPontoonCommand) ReceivedAt() time.Time { return c.At }

// AddItemCommand places a new cargo item over the center of flotation.
type AddItemCommand struct{ At time.Time }

func (c AddItemCommand) Type() CommandType     { return CmdAddItem }
func (c AddItemCommand) ReceivedAt() time.Time { return c.At }

// MoveItemCommand drags an item to a new horizontal position. The
// assembly clamps the position to the deck.
type MoveItemCommand struct {
	At    time.Time
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Z     float64 `json:"z"`
}

func (c MoveItemCommand) Type() CommandType     { return CmdMoveItem }
func (c MoveItemCommand) ReceivedAt() time.Time { return c.At }

// SetGeometryCommand edits a pontoon's dimensions or weight. Nil
// fields are left unchanged; invalid values are dropped by the core.
type SetGeometryCommand struct {
	At     time.Time
	ID     int      `json:"id"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
	Depth  *float64 `json:"depth,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

func (c SetGeometryCommand) Type() CommandType     { return CmdSetGeometry }
func (c SetGeometryCommand) ReceivedAt() time.Time { return c.At }
