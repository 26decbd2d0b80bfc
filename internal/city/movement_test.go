package city

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func groundIndex() *Index {
	ix := testIndex()
	ix.Register(&Plane{Label: "ground", HalfX: GroundHalfSize, HalfZ: GroundHalfSize})
	return ix
}

func TestStep_IdleOnGroundStaysPut(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{}
	vy := 0.0

	for i := 0; i < 10; i++ {
		res := m.Step(&p, &vy, Intent{}, false)
		assert.Equal(t, 0.0, p.Position.Y(), "frame %d", i)
		assert.Equal(t, 0.0, vy, "frame %d", i)
		assert.True(t, res.Grounded)
		assert.False(t, res.Landed)
	}
}

func TestStep_AscendFiveFramesRisesTen(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{}
	vy := 0.0

	for i := 0; i < 5; i++ {
		m.Step(&p, &vy, Intent{Ascend: true}, false)
	}
	assert.InDelta(t, 10.0, p.Position.Y(), 1e-12)
	assert.Equal(t, AscendRate, vy)
}

func TestStep_GravityDecreasesUntilTerminal(t *testing.T) {
	m := NewMover(testIndex(), DefaultTuning())
	p := Pose{Position: mgl64.Vec3{0, 1000, 0}}
	vy := 0.0

	prev := vy
	for i := 0; i < 40; i++ {
		m.Step(&p, &vy, Intent{}, false)
		require.GreaterOrEqual(t, vy, TerminalFall, "frame %d", i)
		if prev > TerminalFall+Gravity {
			assert.InDelta(t, prev-Gravity, vy, 1e-9, "frame %d", i)
		} else {
			assert.Equal(t, TerminalFall, vy, "frame %d", i)
		}
		prev = vy
	}
}

func TestStep_NoGroundHitFallsToWorldFloor(t *testing.T) {
	m := NewMover(testIndex(), DefaultTuning())
	p := Pose{Position: mgl64.Vec3{0, 3, 0}}
	vy := 0.0

	var landed bool
	for i := 0; i < 20; i++ {
		res := m.Step(&p, &vy, Intent{}, false)
		assert.GreaterOrEqual(t, p.Position.Y(), 0.0)
		landed = landed || res.Landed
	}
	assert.Equal(t, 0.0, p.Position.Y())
	assert.True(t, landed)
}

func TestStep_NeverEndsBelowRoof(t *testing.T) {
	ix := groundIndex()
	ix.Register(boxSurface("tower", mgl64.Vec3{40, 60, 40}, mgl64.Vec3{0, 0, 0}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{Position: mgl64.Vec3{0, 120, 0}}
	vy := 0.0

	for i := 0; i < 80; i++ {
		m.Step(&p, &vy, Intent{}, false)
		require.GreaterOrEqual(t, p.Position.Y(), 60.0-1e-9, "frame %d", i)
	}
	assert.InDelta(t, 60.0, p.Position.Y(), 1e-9)
	assert.Equal(t, 0.0, vy)
}

func TestStep_VehicleRidesAboveClearance(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{Position: mgl64.Vec3{25, VehicleY, 0}}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{}, true)
	assert.InDelta(t, VehicleClearance, res.FloorY, 1e-12)
	assert.InDelta(t, VehicleClearance, p.Position.Y(), 1e-12)
}

func TestStep_ForwardFollowsYaw(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{Yaw: math.Pi / 2}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{Forward: true}, false)
	require.True(t, res.Moved)
	assert.InDelta(t, -WalkSpeed, p.Position.X(), 1e-12)
	assert.InDelta(t, 0.0, p.Position.Z(), 1e-12)

	m.Step(&p, &vy, Intent{Backward: true}, false)
	assert.InDelta(t, 0.0, p.Position.X(), 1e-12)
}

func TestStep_DriveSpeedWhenMounted(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{}
	vy := 0.0

	m.Step(&p, &vy, Intent{Forward: true}, true)
	assert.InDelta(t, -DriveSpeed, p.Position.Z(), 1e-12)
}

func TestStep_OpposingIntentsAreAdditive(t *testing.T) {
	ix := groundIndex()
	ix.Register(boxSurface("wall", mgl64.Vec3{20, 20, 2}, mgl64.Vec3{0, 0, -4}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{Yaw: 0.3}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{Forward: true, Backward: true}, false)
	assert.False(t, res.Moved)
	assert.False(t, res.Blocked, "a zero sum requests no move and no wall probe")
	assert.InDelta(t, 0.0, p.Position.X(), 1e-12)
	assert.InDelta(t, 0.0, p.Position.Z(), 1e-12)
}

func TestStep_WallWithinMarginBlocksEntirely(t *testing.T) {
	ix := groundIndex()
	// Front face at z=-5: closer than 1.5 + 4.
	ix.Register(boxSurface("wall", mgl64.Vec3{20, 20, 2}, mgl64.Vec3{0, 0, -6}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{Yaw: 0.1}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{Forward: true, TurnLeft: true}, false)
	assert.True(t, res.Blocked)
	assert.False(t, res.Moved)
	assert.Equal(t, 0.0, p.Position.X())
	assert.Equal(t, 0.0, p.Position.Z())
	assert.InDelta(t, 0.1+TurnRate, p.Yaw, 1e-12, "turning still applies when blocked")
}

func TestStep_WallBeyondMarginAllowsFullStep(t *testing.T) {
	ix := groundIndex()
	// Front face at z=-6: farther than 1.5 + 4.
	ix.Register(boxSurface("wall", mgl64.Vec3{20, 20, 2}, mgl64.Vec3{0, 0, -7}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{Forward: true}, false)
	assert.True(t, res.Moved)
	assert.InDelta(t, -WalkSpeed, p.Position.Z(), 1e-12)
}

func TestStep_WalkingIntoWallStopsOutsideMargin(t *testing.T) {
	ix := groundIndex()
	ix.Register(boxSurface("wall", mgl64.Vec3{20, 20, 2}, mgl64.Vec3{0, 0, -41}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{}
	vy := 0.0

	for i := 0; i < 60; i++ {
		m.Step(&p, &vy, Intent{Forward: true}, false)
		gap := -40.0 - p.Position.Z()
		require.Less(t, gap, 0.0+1e-9, "never passes the wall face")
		require.GreaterOrEqual(t, -gap, WallMargin-1e-9, "frame %d", i)
	}
	assert.LessOrEqual(t, 40.0+p.Position.Z(), WalkSpeed+WallMargin+1e-9)
}

func TestStep_TurnBothWaysCancels(t *testing.T) {
	m := NewMover(groundIndex(), DefaultTuning())
	p := Pose{Yaw: 1}
	vy := 0.0

	m.Step(&p, &vy, Intent{TurnLeft: true}, false)
	assert.InDelta(t, 1+TurnRate, p.Yaw, 1e-12)
	m.Step(&p, &vy, Intent{TurnRight: true}, false)
	m.Step(&p, &vy, Intent{TurnLeft: true, TurnRight: true}, false)
	assert.InDelta(t, 1.0, p.Yaw, 1e-12)
}

func TestStep_LowKerbBelowProbeDoesNotBlock(t *testing.T) {
	ix := groundIndex()
	ix.Register(boxSurface("kerb", mgl64.Vec3{20, 2, 2}, mgl64.Vec3{0, 0, -3}))
	m := NewMover(ix, DefaultTuning())
	p := Pose{}
	vy := 0.0

	res := m.Step(&p, &vy, Intent{Forward: true}, false)
	assert.True(t, res.Moved)
}
