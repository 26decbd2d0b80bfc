package city

import "github.com/go-gl/mathgl/mgl64"

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	NodeGroup NodeKind = iota
	NodeMesh
)

// Mesh is local-space geometry with a flat colour.
type Mesh struct {
	Triangles []Triangle
	Color     RGB
}

// Transformed returns the triangles mapped through m.
func (m *Mesh) Transformed(world mgl64.Mat4) []Triangle {
	out := make([]Triangle, len(m.Triangles))
	for i, t := range m.Triangles {
		out[i] = Triangle{
			A: transformPoint(world, t.A),
			B: transformPoint(world, t.B),
			C: transformPoint(world, t.C),
		}
	}
	return out
}

func transformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// Node is a scene-graph element: a group with children or a mesh leaf.
// Mesh is non-nil iff Kind == NodeMesh.
type Node struct {
	Kind     NodeKind
	Name     string
	Position mgl64.Vec3
	Yaw      float64
	Scale    mgl64.Vec3
	Hidden   bool
	Mesh     *Mesh
	Children []*Node
}

func NewGroup(name string, children ...*Node) *Node {
	return &Node{Kind: NodeGroup, Name: name, Scale: mgl64.Vec3{1, 1, 1}, Children: children}
}

func NewMeshNode(name string, m *Mesh) *Node {
	return &Node{Kind: NodeMesh, Name: name, Scale: mgl64.Vec3{1, 1, 1}, Mesh: m}
}

func (n *Node) Add(children ...*Node) {
	n.Children = append(n.Children, children...)
}

// Local is translate * rotateY * scale.
func (n *Node) Local() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Position.X(), n.Position.Y(), n.Position.Z())
	r := mgl64.HomogRotate3DY(n.Yaw)
	s := mgl64.Scale3D(n.Scale.X(), n.Scale.Y(), n.Scale.Z())
	return t.Mul4(r).Mul4(s)
}

// Visitor receives every visible node with its accumulated world transform.
type Visitor interface {
	Group(n *Node, world mgl64.Mat4)
	Mesh(n *Node, m *Mesh, world mgl64.Mat4)
}

// Walk visits n and its descendants depth-first. Hidden subtrees are skipped.
func (n *Node) Walk(parent mgl64.Mat4, v Visitor) {
	if n.Hidden {
		return
	}
	world := parent.Mul4(n.Local())
	switch n.Kind {
	case NodeGroup:
		v.Group(n, world)
	case NodeMesh:
		v.Mesh(n, n.Mesh, world)
	}
	for _, c := range n.Children {
		c.Walk(world, v)
	}
}

// MeshCount returns the number of mesh leaves under n, hidden or not.
func (n *Node) MeshCount() int {
	count := 0
	if n.Kind == NodeMesh {
		count++
	}
	for _, c := range n.Children {
		count += c.MeshCount()
	}
	return count
}

// BoxMesh builds a box of the given size centred on X/Z with its base at y=0.
func BoxMesh(size mgl64.Vec3, col RGB) *Mesh {
	hx, hz := size.X()/2, size.Z()/2
	h := size.Y()
	v := [8]mgl64.Vec3{
		{-hx, 0, -hz}, {hx, 0, -hz}, {hx, 0, hz}, {-hx, 0, hz},
		{-hx, h, -hz}, {hx, h, -hz}, {hx, h, hz}, {-hx, h, hz},
	}
	quad := func(a, b, c, d int) []Triangle {
		return []Triangle{{A: v[a], B: v[b], C: v[c]}, {A: v[a], B: v[c], C: v[d]}}
	}
	var tris []Triangle
	tris = append(tris, quad(0, 1, 2, 3)...) // bottom
	tris = append(tris, quad(4, 7, 6, 5)...) // top
	tris = append(tris, quad(3, 2, 6, 7)...) // +Z
	tris = append(tris, quad(1, 0, 4, 5)...) // -Z
	tris = append(tris, quad(2, 1, 5, 6)...) // +X
	tris = append(tris, quad(0, 3, 7, 4)...) // -X
	return &Mesh{Triangles: tris, Color: col}
}

// SheetMesh is a single horizontal quad at y=0.
func SheetMesh(halfX, halfZ float64, col RGB) *Mesh {
	a := mgl64.Vec3{-halfX, 0, -halfZ}
	b := mgl64.Vec3{halfX, 0, -halfZ}
	c := mgl64.Vec3{halfX, 0, halfZ}
	d := mgl64.Vec3{-halfX, 0, halfZ}
	return &Mesh{
		Triangles: []Triangle{{A: a, B: d, C: c}, {A: a, B: c, C: b}},
		Color:     col,
	}
}
