package city

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Rect is an axis-aligned rectangle on the ground (XZ) plane.
type Rect struct {
	X0, Z0 float64
	X1, Z1 float64
}

func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.X1 <= r.X1 && o.Z0 >= r.Z0 && o.Z1 <= r.Z1
}

// rayHits tests the ground projection of a ray against the rectangle.
// A vertical ray projects to a point.
func (r Rect) rayHits(origin, dir mgl64.Vec3) bool {
	tmin, tmax := 0.0, math.Inf(1)
	if !slab(origin.X(), dir.X(), r.X0, r.X1, &tmin, &tmax) {
		return false
	}
	return slab(origin.Z(), dir.Z(), r.Z0, r.Z1, &tmin, &tmax)
}

type quadItem struct {
	surface int
	bounds  Rect
}

// quadNode is a footprint quadtree used to skip surfaces a ray cannot reach.
type quadNode struct {
	bounds Rect
	depth  int
	items  []quadItem
	child  [4]*quadNode
}

func newQuadNode(bounds Rect, depth int) *quadNode {
	return &quadNode{
		bounds: bounds,
		depth:  depth,
		items:  make([]quadItem, 0, QuadCapacity),
	}
}

func (n *quadNode) insert(surface int, bounds Rect) {
	if n.child[0] != nil {
		if c := n.childThatContains(bounds); c != nil {
			c.insert(surface, bounds)
			return
		}
	}

	n.items = append(n.items, quadItem{surface: surface, bounds: bounds})

	if len(n.items) > QuadCapacity && n.depth < QuadMaxDepth {
		n.subdivide()
		kept := n.items[:0]
		for _, it := range n.items {
			if c := n.childThatContains(it.bounds); c != nil {
				c.insert(it.surface, it.bounds)
			} else {
				kept = append(kept, it)
			}
		}
		n.items = kept
	}
}

func (n *quadNode) queryRay(origin, dir mgl64.Vec3, out *[]int) {
	if !n.bounds.rayHits(origin, dir) {
		return
	}
	for _, it := range n.items {
		if it.bounds.rayHits(origin, dir) {
			*out = append(*out, it.surface)
		}
	}
	if n.child[0] == nil {
		return
	}
	for i := 0; i < 4; i++ {
		n.child[i].queryRay(origin, dir, out)
	}
}

func (n *quadNode) subdivide() {
	if n.child[0] != nil {
		return
	}
	mx := (n.bounds.X0 + n.bounds.X1) * 0.5
	mz := (n.bounds.Z0 + n.bounds.Z1) * 0.5
	n.child[0] = newQuadNode(Rect{X0: n.bounds.X0, Z0: n.bounds.Z0, X1: mx, Z1: mz}, n.depth+1)
	n.child[1] = newQuadNode(Rect{X0: mx, Z0: n.bounds.Z0, X1: n.bounds.X1, Z1: mz}, n.depth+1)
	n.child[2] = newQuadNode(Rect{X0: n.bounds.X0, Z0: mz, X1: mx, Z1: n.bounds.Z1}, n.depth+1)
	n.child[3] = newQuadNode(Rect{X0: mx, Z0: mz, X1: n.bounds.X1, Z1: n.bounds.Z1}, n.depth+1)
}

func (n *quadNode) childThatContains(b Rect) *quadNode {
	for i := 0; i < 4; i++ {
		c := n.child[i]
		if c != nil && c.bounds.Contains(b) {
			return c
		}
	}
	return nil
}

// Index is the registry of every collidable surface in the world.
// Surfaces are append-only. Probe answers exactly what a linear scan over
// all surfaces would; the quadtree only prunes candidates.
type Index struct {
	surfaces []Surface
	root     *quadNode
	oversize []int // footprints not inside the root bounds
	scratch  []int
}

// NewIndex creates an index whose quadtree covers the given footprint.
// Surfaces outside it are still found, just without pruning.
func NewIndex(bounds Rect) *Index {
	return &Index{root: newQuadNode(bounds, 0)}
}

func (ix *Index) Register(s Surface) {
	id := len(ix.surfaces)
	ix.surfaces = append(ix.surfaces, s)
	fp := s.Bounds().Footprint()
	if !ix.root.bounds.Contains(fp) {
		ix.oversize = append(ix.oversize, id)
		return
	}
	ix.root.insert(id, fp)
}

func (ix *Index) Len() int { return len(ix.surfaces) }

// Surfaces returns the registered surfaces in registration order.
func (ix *Index) Surfaces() []Surface { return ix.surfaces }

// Probe casts a ray and returns the nearest hit. dir need not be normalized;
// the reported distance is in world units.
func (ix *Index) Probe(origin, dir mgl64.Vec3) (Hit, bool) {
	if dir.Len() == 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	cand := append(ix.scratch[:0], ix.oversize...)
	ix.root.queryRay(origin, dir, &cand)
	ix.scratch = cand

	best := Hit{Distance: math.Inf(1)}
	found := false
	for _, id := range cand {
		s := ix.surfaces[id]
		if t, ok := s.Intersect(origin, dir); ok && t < best.Distance {
			best.Distance = t
			best.Surface = s
			found = true
		}
	}
	if !found {
		return Hit{}, false
	}
	best.Point = origin.Add(dir.Mul(best.Distance))
	return best, true
}
