package city

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// FrameInput is what a host samples once per frame.
type FrameInput struct {
	Intent Intent
	Toggle bool // edge: enter or leave a vehicle
}

// World is the shared state touched by the builder, movement and camera.
// It is owned by the single logic thread.
type World struct {
	Index    *Index
	Scene    *Node
	Vehicles []*Vehicle
	Player   *Actor
	Camera   *ChaseCamera
	Tuning   Tuning
	Events   *EventBus
	Log      zerolog.Logger

	Frame uint64
	Last  StepResult

	mover *Mover
}

func NewWorld(t Tuning, log zerolog.Logger) *World {
	idx := NewIndex(Rect{X0: -IndexHalfWidth, Z0: -IndexHalfWidth, X1: IndexHalfWidth, Z1: IndexHalfWidth})
	w := &World{
		Index:  idx,
		Scene:  NewGroup("scene"),
		Player: NewActor(mgl64.Vec3{}),
		Camera: NewChaseCamera(800, 600),
		Tuning: t,
		Events: NewEventBus(),
		Log:    log,
		mover:  NewMover(idx, t),
	}
	w.Scene.Add(w.Player.Node)
	return w
}

// AddVehicle appends a vehicle to the fleet.
func (w *World) AddVehicle(v *Vehicle) {
	w.Vehicles = append(w.Vehicles, v)
}

// Target is the pose the camera follows this frame.
func (w *World) Target() Pose {
	return *w.Player.Target()
}

// Toggle runs the mode state machine once.
func (w *World) Toggle() Transition {
	p := w.Player
	car := p.CurrentCar
	tr := p.Toggle(w.Vehicles, w.Tuning)
	switch tr {
	case TransitionBoard:
		car = p.CurrentCar
		w.Log.Info().Str("vehicle", car.Model).Str("id", car.ID.String()).Msg("boarded vehicle")
		w.Events.Emit(Event{Type: EventBoarded, Position: car.Pose.Position, Vehicle: car})
	case TransitionDisembark:
		w.Log.Info().Str("vehicle", car.Model).Floats64("at", p.Pose.Position[:]).Msg("left vehicle")
		w.Events.Emit(Event{Type: EventDisembarked, Position: p.Pose.Position, Vehicle: car})
	default:
		w.Log.Debug().Msg("no vehicle in range")
	}
	return tr
}

// Update advances one frame: mode toggle, movement, camera, scene sync.
func (w *World) Update(in FrameInput) {
	w.Frame++
	p := w.Player
	p.Intent = in.Intent
	if in.Toggle {
		w.Toggle()
	}

	target := p.Target()
	wasBlocked := w.Last.Blocked
	res := w.mover.Step(target, &p.VelocityY, p.Intent, p.Mounted())
	w.Last = res

	if res.Landed {
		w.Log.Debug().Float64("y", target.Position.Y()).Msg("landed")
		w.Events.Emit(Event{Type: EventLanded, Position: target.Position})
	}
	if res.Blocked && !wasBlocked {
		w.Events.Emit(Event{Type: EventWallBlocked, Position: target.Position})
	}

	w.Camera.Follow(*target, p.Mounted(), w.Tuning)
	w.syncNodes()
}

func (w *World) syncNodes() {
	w.Player.syncNode()
	for _, v := range w.Vehicles {
		v.syncNode()
	}
}
