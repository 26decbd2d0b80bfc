package city

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Mode says which pose the player's input drives.
type Mode uint8

const (
	OnFoot Mode = iota
	InVehicle
)

func (m Mode) String() string {
	switch m {
	case OnFoot:
		return "on-foot"
	case InVehicle:
		return "in-vehicle"
	}
	return "unknown"
}

// Intent is the level state of the five movement inputs.
type Intent struct {
	Forward   bool
	Backward  bool
	TurnLeft  bool
	TurnRight bool
	Ascend    bool
}

// Actor is the player-controlled character.
type Actor struct {
	Pose       Pose
	Visible    bool
	VelocityY  float64
	Intent     Intent
	Mode       Mode
	CurrentCar *Vehicle

	// Node anchors the avatar model; its transform follows Pose.
	Node *Node
}

func NewActor(pos mgl64.Vec3) *Actor {
	a := &Actor{
		Pose:    Pose{Position: pos},
		Visible: true,
		Node:    NewGroup("player"),
	}
	a.syncNode()
	return a
}

// Target is the pose advanced by movement this frame.
func (a *Actor) Target() *Pose {
	if a.Mode == InVehicle && a.CurrentCar != nil {
		return &a.CurrentCar.Pose
	}
	return &a.Pose
}

func (a *Actor) Mounted() bool { return a.Mode == InVehicle }

func (a *Actor) setVisible(v bool) {
	a.Visible = v
	a.Node.Hidden = !v
}

func (a *Actor) syncNode() {
	a.Node.Position = a.Pose.Position
	a.Node.Yaw = a.Pose.Yaw
}

// Vehicle is a drivable prop. Its pose only changes while Driver is set.
type Vehicle struct {
	ID     uuid.UUID
	Model  string
	Pose   Pose
	Driver *Actor

	// Node is nil until the model finishes loading.
	Node *Node
}

func NewVehicle(model string, pos mgl64.Vec3) *Vehicle {
	return &Vehicle{
		ID:    uuid.New(),
		Model: model,
		Pose:  Pose{Position: pos},
	}
}

func (v *Vehicle) syncNode() {
	if v.Node == nil {
		return
	}
	v.Node.Position = v.Pose.Position
	v.Node.Yaw = v.Pose.Yaw
}
