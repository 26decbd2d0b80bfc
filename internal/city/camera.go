package city

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChaseCamera trails the controlled target. Position is smoothed; LookAt is
// recomputed from scratch every frame.
type ChaseCamera struct {
	Position mgl64.Vec3
	LookAt   mgl64.Vec3

	FovY       float64 // degrees
	Near, Far  float64
	Width      int
	Height     int
	PixelRatio float64
}

func NewChaseCamera(width, height int) *ChaseCamera {
	c := &ChaseCamera{
		FovY:       CamFovY,
		Near:       CamNear,
		Far:        CamFar,
		PixelRatio: 1,
	}
	c.Resize(width, height, 1)
	return c
}

// Resize updates projection parameters only. Zero sizes are ignored so a
// minimized window keeps the last valid aspect.
func (c *ChaseCamera) Resize(width, height int, pixelRatio float64) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Width = width
	c.Height = height
	c.PixelRatio = clampF(pixelRatio, 1, MaxPixelRatio)
}

func (c *ChaseCamera) Aspect() float64 {
	if c.Height == 0 {
		return 1
	}
	return float64(c.Width) / float64(c.Height)
}

// Offset is the yaw-rotated (0, height, distance) trail vector.
func Offset(target Pose, mounted bool, t Tuning) mgl64.Vec3 {
	h, d := t.CamWalkHeight, t.CamWalkDistance
	if mounted {
		h, d = t.CamDriveHeight, t.CamDriveDistance
	}
	return target.Rotation().Rotate(mgl64.Vec3{0, h, d})
}

// Desired is where the camera would sit with no smoothing.
func Desired(target Pose, mounted bool, t Tuning) mgl64.Vec3 {
	return target.Position.Add(Offset(target, mounted, t))
}

// Follow eases the camera toward its desired position and re-aims it.
func (c *ChaseCamera) Follow(target Pose, mounted bool, t Tuning) {
	want := Desired(target, mounted, t)
	c.Position = c.Position.Add(want.Sub(c.Position).Mul(t.CamSmoothing))
	c.LookAt = target.Position.Add(mgl64.Vec3{0, t.LookAtLift, 0})
}

func (c *ChaseCamera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.LookAt, up)
}

func (c *ChaseCamera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect(), c.Near, c.Far)
}

// Heading is the camera's yaw on the ground plane, for top-down views.
func (c *ChaseCamera) Heading() float64 {
	d := c.LookAt.Sub(c.Position)
	return math.Atan2(-d.X(), -d.Z())
}
