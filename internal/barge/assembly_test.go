package barge

import (
	"testing"

	"github.com/stretchr/testify/require"

	"barge-simulator/internal/fluid"
)

func newTestAssembly(t *testing.T) *Assembly {
	t.Helper()
	return New(DefaultConfig())
}

func TestAssembly_AddPontoonPlacement(t *testing.T) {
	a := newTestAssembly(t)

	first := a.AddPontoon()
	require.Equal(t, 0, first.ID)
	require.Equal(t, 0.0, first.Rest.X)
	require.Equal(t, 0.0, first.Rest.Z)

	// Pontoons tile edge-to-edge along X with no gap or overlap.
	for i := 1; i < 5; i++ {
		prev := a.Pontoon(i - 1)
		p := a.AddPontoon()
		require.Equal(t, i, p.ID)
		require.InDelta(t, prev.Rest.X+prev.Width/2+p.Width/2, p.Rest.X, 1e-12)
		require.Equal(t, prev.Rest.Z, p.Rest.Z)
		require.Equal(t, p.Rest, p.Position)
	}

	require.Equal(t, 5, a.PontoonCount())
}

func TestAssembly_PontoonFloatsAtDraft(t *testing.T) {
	a := newTestAssembly(t)
	p := a.AddPontoon()

	require.InDelta(t, -p.Draft()+p.Height/2, p.Rest.Y, 1e-12)
}

func TestAssembly_CenterOfFlotation(t *testing.T) {
	a := newTestAssembly(t)

	// No pontoons: the previous center (zero value) is retained.
	a.Update()
	require.Equal(t, 0.0, a.CenterOfFlotation().X)

	p0 := a.AddPontoon()
	require.Equal(t, 0.0, a.CenterOfFlotation().X)

	// Two equal pontoons: center sits midway between them.
	p1 := a.AddPontoon()
	c := a.CenterOfFlotation()
	require.InDelta(t, (p0.Rest.X+p1.Rest.X)/2, c.X, 1e-12)
	require.Equal(t, 0.0, c.Y)
	require.Equal(t, 0.0, c.Z)

	// Widening one pontoon pulls the centroid toward it.
	w := 60.0
	a.SetPontoonGeometry(p1.ID, &w, nil, nil, nil)
	require.Greater(t, a.CenterOfFlotation().X, c.X)
}

func TestAssembly_Area(t *testing.T) {
	a := newTestAssembly(t)
	require.Equal(t, 0.0, a.Area())

	a.AddPontoon()
	a.AddPontoon()
	require.InDelta(t, 2*20*10, a.Area(), 1e-12)
}

func TestAssembly_CenteredItemGivesZeroTilt(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	a.AddItem()
	a.Update()

	tiltX, tiltZ := a.Tilt()
	require.Equal(t, 0.0, tiltX)
	require.Equal(t, 0.0, tiltZ)
}

func TestAssembly_TiltFromOffset(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon() // 20x10 at the origin
	it := a.AddItem()

	// offsetX = 10 on the damping divisor 10 gives exactly MaxTilt.
	it.Position.X, it.Position.Z = 10, 0
	a.Update()
	tiltX, tiltZ := a.Tilt()
	require.InDelta(t, 0.05, tiltZ, 1e-12)
	require.Equal(t, 0.0, tiltX)

	// The Z offset drives tiltX with opposite sign and divisor 5.
	it.Position.X, it.Position.Z = 0, 2.5
	a.Update()
	tiltX, tiltZ = a.Tilt()
	require.InDelta(t, -(2.5/5.0)*0.05, tiltX, 1e-12)
	require.Equal(t, 0.0, tiltZ)
}

func TestAssembly_TiltIgnoresSecondaryItems(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	a.AddItem()
	second := a.AddItem()

	second.Position.X = 9
	a.Update()

	tiltX, tiltZ := a.Tilt()
	require.Equal(t, 0.0, tiltX)
	require.Equal(t, 0.0, tiltZ)
}

func TestAssembly_MoveItemClamps(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	it := a.AddItem()

	// Deck is 20 wide, 10 deep; the item must stay one unit inside.
	a.MoveItem(0, 100, -100)
	require.Equal(t, 9.0, it.Position.X)
	require.Equal(t, -4.0, it.Position.Z)

	a.MoveItem(0, -9, 4)
	require.Equal(t, -9.0, it.Position.X)
	require.Equal(t, 4.0, it.Position.Z)

	// In-range moves pass through unchanged.
	a.MoveItem(0, 3.5, -2)
	require.Equal(t, 3.5, it.Position.X)
	require.Equal(t, -2.0, it.Position.Z)
}

func TestAssembly_MoveItemOutOfRangeIndex(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()

	// No items yet; nothing to move, nothing to panic over.
	a.MoveItem(0, 5, 5)
	a.MoveItem(-1, 5, 5)
	require.Equal(t, 0, a.ItemCount())
}

func TestAssembly_ItemRestsOnDeck(t *testing.T) {
	a := newTestAssembly(t)
	p := a.AddPontoon()
	it := a.AddItem()

	require.InDelta(t, p.restTop()+ItemHeight/2, it.Position.Y, 1e-12)

	// After an update with the item centered, the height is unchanged.
	a.Update()
	require.InDelta(t, p.restTop()+ItemHeight/2, it.Position.Y, 1e-12)
}

func TestAssembly_UpdateIsIdempotent(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	a.AddPontoon()
	a.AddItem()
	a.MoveItem(0, 7, -3)

	p0, p1, it := a.Pontoon(0), a.Pontoon(1), a.Item(0)
	pos0, pos1, posIt := p0.Position, p1.Position, it.Position
	rot0 := p0.Rotation
	tiltX, tiltZ := a.Tilt()

	a.Update()
	a.Update()

	require.Equal(t, pos0, p0.Position)
	require.Equal(t, pos1, p1.Position)
	require.Equal(t, posIt, it.Position)
	require.Equal(t, rot0, p0.Rotation)
	gotX, gotZ := a.Tilt()
	require.Equal(t, tiltX, gotX)
	require.Equal(t, tiltZ, gotZ)
}

func TestAssembly_ZeroTiltIsIdentity(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	a.AddPontoon()
	a.AddPontoon()

	rests := make([]struct{ x, y, z float64 }, a.PontoonCount())
	for i := range rests {
		p := a.Pontoon(i)
		rests[i] = struct{ x, y, z float64 }{p.Rest.X, p.Rest.Y, p.Rest.Z}
	}

	// No items means zero tilt; rotation must leave every rest
	// position unchanged.
	a.Update()
	for i := range rests {
		p := a.Pontoon(i)
		require.InDelta(t, rests[i].x, p.Position.X, 1e-12)
		require.InDelta(t, rests[i].y, p.Position.Y, 1e-12)
		require.InDelta(t, rests[i].z, p.Position.Z, 1e-12)
		require.Equal(t, Rotation{}, p.Rotation)
	}
}

func TestAssembly_TiltRotatesRigidly(t *testing.T) {
	a := newTestAssembly(t)
	a.AddPontoon()
	a.AddPontoon()
	it := a.AddItem()

	it.Position.X = 6
	a.Update()

	tiltX, tiltZ := a.Tilt()
	require.NotZero(t, tiltZ)

	// Every pontoon carries the same rotation, the negated tilt.
	for i := 0; i < a.PontoonCount(); i++ {
		p := a.Pontoon(i)
		require.Equal(t, Rotation{X: -tiltX, Z: -tiltZ}, p.Rotation)
	}
	require.Equal(t, Rotation{X: -tiltX, Z: -tiltZ}, it.Rotation)

	// Distances between pontoon centers are preserved by the rigid
	// rotation.
	rest := a.Pontoon(1).Rest.Sub(a.Pontoon(0).Rest).Norm()
	cur := a.Pontoon(1).Position.Sub(a.Pontoon(0).Position).Norm()
	require.InDelta(t, rest, cur, 1e-9)
}

func TestAssembly_GeometryEditResettles(t *testing.T) {
	a := newTestAssembly(t)
	p := a.AddPontoon()

	// Doubling the weight doubles the draft and lowers the rest
	// position accordingly.
	w := 100000.0
	a.SetPontoonGeometry(p.ID, nil, nil, nil, &w)
	require.InDelta(t, 0.5, p.Draft(), 1e-12)
	require.InDelta(t, -0.5+p.Height/2, p.Rest.Y, 1e-12)

	// Unknown IDs are ignored.
	a.SetPontoonGeometry(99, &w, nil, nil, nil)
	require.Equal(t, 20.0, p.Width)
}

func TestAssembly_ConfigFallbacks(t *testing.T) {
	a := New(Config{Fluid: fluid.Fluid{Density: -1}, PontoonWidth: 0})
	p := a.AddPontoon()

	require.Equal(t, 20.0, p.Width)
	require.Equal(t, 1000.0, p.FluidDensity)
}
