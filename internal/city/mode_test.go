package city

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fleetAt(xs ...float64) []*Vehicle {
	out := make([]*Vehicle, len(xs))
	for i, x := range xs {
		out[i] = NewVehicle(VehicleModels[i%len(VehicleModels)], mgl64.Vec3{x, VehicleY, 0})
	}
	return out
}

// checkModeInvariants asserts the relations that hold between toggles.
func checkModeInvariants(t *testing.T, a *Actor, fleet []*Vehicle) {
	t.Helper()
	if a.Mode == InVehicle {
		require.NotNil(t, a.CurrentCar)
		assert.Same(t, a, a.CurrentCar.Driver)
		assert.False(t, a.Visible)
		assert.True(t, a.Node.Hidden)
	} else {
		assert.Nil(t, a.CurrentCar)
		assert.True(t, a.Visible)
		assert.False(t, a.Node.Hidden)
	}
	drivers := 0
	for _, v := range fleet {
		if v.Driver != nil {
			drivers++
		}
	}
	assert.LessOrEqual(t, drivers, 1)
}

func TestToggle_BoardsVehicleInRange(t *testing.T) {
	fleet := fleetAt(20)
	a := NewActor(mgl64.Vec3{})

	tr := a.Toggle(fleet, DefaultTuning())
	assert.Equal(t, TransitionBoard, tr)
	assert.Equal(t, InVehicle, a.Mode)
	assert.Same(t, fleet[0], a.CurrentCar)
	checkModeInvariants(t, a, fleet)
}

func TestToggle_RadiusIsExclusive(t *testing.T) {
	fleet := []*Vehicle{NewVehicle("taxi", mgl64.Vec3{35, 0, 0})}
	a := NewActor(mgl64.Vec3{})

	tr := a.Toggle(fleet, DefaultTuning())
	assert.Equal(t, TransitionNone, tr)
	assert.Equal(t, OnFoot, a.Mode)
	assert.Nil(t, fleet[0].Driver)
	checkModeInvariants(t, a, fleet)
}

func TestToggle_NoVehicleChangesNothing(t *testing.T) {
	a := NewActor(mgl64.Vec3{3, 4, 5})
	a.Pose.Yaw = 0.7
	before := *a

	tr := a.Toggle(nil, DefaultTuning())
	assert.Equal(t, TransitionNone, tr)
	assert.Equal(t, before.Pose, a.Pose)
	assert.Equal(t, before.Visible, a.Visible)
	assert.Equal(t, before.Mode, a.Mode)
}

func TestToggle_PicksNearestVehicle(t *testing.T) {
	fleet := fleetAt(30, -12, 18)
	a := NewActor(mgl64.Vec3{})

	a.Toggle(fleet, DefaultTuning())
	assert.Same(t, fleet[1], a.CurrentCar)
}

func TestToggle_DisembarkPlacesActorBesideCar(t *testing.T) {
	fleet := fleetAt(20)
	a := NewActor(mgl64.Vec3{})
	tu := DefaultTuning()

	require.Equal(t, TransitionBoard, a.Toggle(fleet, tu))
	fleet[0].Pose.Position = mgl64.Vec3{-40, 0.5, -300}
	fleet[0].Pose.Yaw = 1.2

	tr := a.Toggle(fleet, tu)
	assert.Equal(t, TransitionDisembark, tr)
	assert.Equal(t, mgl64.Vec3{-25, 0.5, -300}, a.Pose.Position)
	assert.Equal(t, a.Pose.Position, a.Node.Position)
	assert.Nil(t, fleet[0].Driver)
	checkModeInvariants(t, a, fleet)
}

func TestToggle_DisembarkIgnoresRange(t *testing.T) {
	fleet := fleetAt(20)
	a := NewActor(mgl64.Vec3{})
	tu := DefaultTuning()

	a.Toggle(fleet, tu)
	fleet[0].Pose.Position = mgl64.Vec3{5000, 0.5, 5000}
	assert.Equal(t, TransitionDisembark, a.Toggle(fleet, tu))
}

func TestToggle_SequencePreservesInvariants(t *testing.T) {
	fleet := fleetAt(10, 25, -30)
	a := NewActor(mgl64.Vec3{})
	tu := DefaultTuning()

	for i := 0; i < 12; i++ {
		a.Toggle(fleet, tu)
		checkModeInvariants(t, a, fleet)
	}
}

func TestNearestVehicle_SkipsDrivenVehicles(t *testing.T) {
	fleet := fleetAt(5, 9)
	fleet[0].Driver = NewActor(mgl64.Vec3{})

	got := NearestVehicle(mgl64.Vec3{}, fleet, BoardRadius)
	assert.Same(t, fleet[1], got)
}

func TestTransitionAndModeStrings(t *testing.T) {
	assert.Equal(t, "board", TransitionBoard.String())
	assert.Equal(t, "disembark", TransitionDisembark.String())
	assert.Equal(t, "none", TransitionNone.String())
	assert.Equal(t, "on-foot", OnFoot.String())
	assert.Equal(t, "in-vehicle", InVehicle.String())
}
