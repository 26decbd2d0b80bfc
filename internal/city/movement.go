package city

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StepResult describes what one movement step did.
type StepResult struct {
	FloorY   float64
	Grounded bool // clamped to the floor this frame
	Landed   bool // clamped while falling
	Blocked  bool // horizontal move discarded by the wall probe
	Moved    bool // horizontal move applied
}

// Mover advances a pose against the surfaces of an Index.
type Mover struct {
	index  *Index
	tuning Tuning
}

func NewMover(index *Index, t Tuning) *Mover {
	return &Mover{index: index, tuning: t}
}

// FloorAt probes straight down from above pos. No hit means world floor 0.
func (m *Mover) FloorAt(pos mgl64.Vec3, mounted bool) float64 {
	origin := pos.Add(mgl64.Vec3{0, m.tuning.GroundProbeLift, 0})
	floorY := 0.0
	if hit, ok := m.index.Probe(origin, mgl64.Vec3{0, -1, 0}); ok {
		floorY = hit.Point.Y()
	}
	if mounted {
		floorY += m.tuning.VehicleClearance
	}
	return floorY
}

// Step runs one frame of ground probe, vertical integration, ground clamp,
// horizontal move with wall probe, and turning, in that order.
func (m *Mover) Step(p *Pose, vy *float64, in Intent, mounted bool) StepResult {
	t := m.tuning
	var res StepResult

	res.FloorY = m.FloorAt(p.Position, mounted)

	falling := *vy < 0
	if in.Ascend {
		*vy = t.AscendRate
	} else {
		*vy -= t.Gravity
		if *vy < t.TerminalFall {
			*vy = t.TerminalFall
		}
	}
	p.Position[1] += *vy

	if p.Position[1] <= res.FloorY {
		p.Position[1] = res.FloorY
		*vy = 0
		res.Grounded = true
		res.Landed = falling
	}

	speed := t.Speed(mounted)
	var dx, dz float64
	if in.Forward {
		dz -= math.Cos(p.Yaw) * speed
		dx -= math.Sin(p.Yaw) * speed
	}
	if in.Backward {
		dz += math.Cos(p.Yaw) * speed
		dx += math.Sin(p.Yaw) * speed
	}

	if dx != 0 || dz != 0 {
		dir := mgl64.Vec3{dx, 0, dz}.Normalize()
		origin := p.Position.Add(mgl64.Vec3{0, t.WallProbeLift, 0})
		hit, ok := m.index.Probe(origin, dir)
		if ok && hit.Distance < speed+t.WallMargin {
			res.Blocked = true
		} else {
			p.Position[0] += dx
			p.Position[2] += dz
			res.Moved = true
		}
	}

	if in.TurnLeft {
		p.Yaw += t.TurnRate
	}
	if in.TurnRight {
		p.Yaw -= t.TurnRate
	}
	return res
}
