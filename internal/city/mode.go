package city

import "github.com/go-gl/mathgl/mgl64"

// Transition is the outcome of a toggle request.
type Transition uint8

const (
	TransitionNone Transition = iota
	TransitionBoard
	TransitionDisembark
)

func (t Transition) String() string {
	switch t {
	case TransitionBoard:
		return "board"
	case TransitionDisembark:
		return "disembark"
	}
	return "none"
}

// NearestVehicle returns the closest free vehicle strictly within radius
// of pos, or nil.
func NearestVehicle(pos mgl64.Vec3, fleet []*Vehicle, radius float64) *Vehicle {
	var best *Vehicle
	bestDist := radius
	for _, v := range fleet {
		if v.Driver != nil {
			continue
		}
		d := pos.Sub(v.Pose.Position).Len()
		if d < bestDist {
			best, bestDist = v, d
		}
	}
	return best
}

// Toggle enters the nearest vehicle in range or leaves the current one.
// With no vehicle in range it changes nothing.
func (a *Actor) Toggle(fleet []*Vehicle, t Tuning) Transition {
	if a.Mode == InVehicle {
		car := a.CurrentCar
		a.Pose.Position = car.Pose.Position.Add(mgl64.Vec3{t.DisembarkOffset, 0, 0})
		a.setVisible(true)
		car.Driver = nil
		a.CurrentCar = nil
		a.Mode = OnFoot
		a.syncNode()
		return TransitionDisembark
	}

	near := NearestVehicle(a.Pose.Position, fleet, t.BoardRadius)
	if near == nil {
		return TransitionNone
	}
	a.Mode = InVehicle
	a.CurrentCar = near
	near.Driver = a
	a.setVisible(false)
	return TransitionBoard
}
