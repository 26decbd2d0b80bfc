package city

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var up = mgl64.Vec3{0, 1, 0}

// Pose is a position plus a heading about the vertical axis.
type Pose struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Facing is the unit ground direction of "forward" at the current yaw.
func (p Pose) Facing() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(p.Yaw), 0, -math.Cos(p.Yaw)}
}

// Rotation returns the yaw as a quaternion about +Y.
func (p Pose) Rotation() mgl64.Quat {
	return mgl64.QuatRotate(p.Yaw, up)
}

// HorizontalDistance ignores the vertical axis.
func HorizontalDistance(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Z()-b.Z())
}
