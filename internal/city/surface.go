package city

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const rayEpsilon = 1e-9

// Surface is a static collidable shape. Implementations must not change
// after registration.
type Surface interface {
	Name() string
	Bounds() AABB
	// Intersect returns the ray parameter of the nearest hit along a
	// normalized direction, or false when the ray misses.
	Intersect(origin, dir mgl64.Vec3) (float64, bool)
}

// Hit is the nearest intersection found by a probe.
type Hit struct {
	Point    mgl64.Vec3
	Distance float64
	Surface  Surface
}

// AABB is an axis-aligned box in world space.
type AABB struct {
	Min, Max mgl64.Vec3
}

func emptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

func (b *AABB) extend(p mgl64.Vec3) {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
}

// Footprint projects the box onto the ground plane.
func (b AABB) Footprint() Rect {
	return Rect{X0: b.Min.X(), Z0: b.Min.Z(), X1: b.Max.X(), Z1: b.Max.Z()}
}

// RayHits reports whether the ray enters the box at some t >= 0.
func (b AABB) RayHits(origin, dir mgl64.Vec3) bool {
	tmin, tmax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if !slab(origin[i], dir[i], b.Min[i], b.Max[i], &tmin, &tmax) {
			return false
		}
	}
	return true
}

// slab narrows [tmin, tmax] to the part of the ray inside [lo, hi] on one axis.
func slab(o, d, lo, hi float64, tmin, tmax *float64) bool {
	if d == 0 {
		return o >= lo && o <= hi
	}
	t0 := (lo - o) / d
	t1 := (hi - o) / d
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 > *tmin {
		*tmin = t0
	}
	if t1 < *tmax {
		*tmax = t1
	}
	return *tmin <= *tmax
}

// Triangle is a single face in world or mesh-local space.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Normal returns the unit face normal (counter-clockwise winding).
func (t Triangle) Normal() mgl64.Vec3 {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	if n.Len() == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

// Intersect is a two-sided Moller-Trumbore test. Edges are widened by
// rayEpsilon so rays through a shared diagonal hit one of its faces.
func (t Triangle) Intersect(origin, dir mgl64.Vec3) (float64, bool) {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < -rayEpsilon || u > 1+rayEpsilon {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < -rayEpsilon || u+v > 1+rayEpsilon {
		return 0, false
	}
	d := e2.Dot(q) * inv
	if d < 0 {
		return 0, false
	}
	return d, true
}

// Plane is a bounded horizontal ground sheet at height Y.
type Plane struct {
	Label        string
	Y            float64
	HalfX, HalfZ float64
}

func (p *Plane) Name() string { return p.Label }

func (p *Plane) Bounds() AABB {
	return AABB{
		Min: mgl64.Vec3{-p.HalfX, p.Y, -p.HalfZ},
		Max: mgl64.Vec3{p.HalfX, p.Y, p.HalfZ},
	}
}

func (p *Plane) Intersect(origin, dir mgl64.Vec3) (float64, bool) {
	if dir.Y() == 0 {
		return 0, false
	}
	t := (p.Y - origin.Y()) / dir.Y()
	if t < 0 {
		return 0, false
	}
	x := origin.X() + dir.X()*t
	z := origin.Z() + dir.Z()*t
	if math.Abs(x) > p.HalfX || math.Abs(z) > p.HalfZ {
		return 0, false
	}
	return t, true
}

// MeshSurface is a world-space triangle soup with a cached bounding box.
type MeshSurface struct {
	label  string
	tris   []Triangle
	bounds AABB
}

func NewMeshSurface(name string, tris []Triangle) *MeshSurface {
	b := emptyAABB()
	for _, t := range tris {
		b.extend(t.A)
		b.extend(t.B)
		b.extend(t.C)
	}
	return &MeshSurface{label: name, tris: tris, bounds: b}
}

func (m *MeshSurface) Name() string { return m.label }

func (m *MeshSurface) Bounds() AABB { return m.bounds }

func (m *MeshSurface) Intersect(origin, dir mgl64.Vec3) (float64, bool) {
	if len(m.tris) == 0 || !m.bounds.RayHits(origin, dir) {
		return 0, false
	}
	best, found := math.Inf(1), false
	for _, t := range m.tris {
		if d, ok := t.Intersect(origin, dir); ok && d < best {
			best, found = d, true
		}
	}
	return best, found
}
