package city

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxMesh_NormalsPointOutward(t *testing.T) {
	m := BoxMesh(mgl64.Vec3{2, 4, 6}, Palette.BuildingA)
	require.Len(t, m.Triangles, 12)

	centre := mgl64.Vec3{0, 2, 0}
	for i, tri := range m.Triangles {
		mid := tri.A.Add(tri.B).Add(tri.C).Mul(1.0 / 3)
		assert.Greater(t, tri.Normal().Dot(mid.Sub(centre)), 0.0, "triangle %d", i)
	}
}

type recorder struct {
	groups []string
	meshes []string
	last   map[string]mgl64.Mat4
}

func (r *recorder) Group(n *Node, world mgl64.Mat4) {
	r.groups = append(r.groups, n.Name)
}

func (r *recorder) Mesh(n *Node, m *Mesh, world mgl64.Mat4) {
	r.meshes = append(r.meshes, n.Name)
	if r.last == nil {
		r.last = map[string]mgl64.Mat4{}
	}
	r.last[n.Name] = world
}

func TestWalk_SkipsHiddenSubtrees(t *testing.T) {
	hidden := NewGroup("hidden", NewMeshNode("ghost", BoxMesh(mgl64.Vec3{1, 1, 1}, Palette.Roof)))
	hidden.Hidden = true
	root := NewGroup("root",
		NewMeshNode("a", BoxMesh(mgl64.Vec3{1, 1, 1}, Palette.Roof)),
		hidden,
		NewGroup("g", NewMeshNode("b", BoxMesh(mgl64.Vec3{1, 1, 1}, Palette.Roof))),
	)

	r := &recorder{}
	root.Walk(mgl64.Ident4(), r)
	assert.Equal(t, []string{"root", "g"}, r.groups)
	assert.Equal(t, []string{"a", "b"}, r.meshes)
	assert.Equal(t, 3, root.MeshCount())
}

func TestWalk_ComposesTransforms(t *testing.T) {
	child := NewMeshNode("leaf", BoxMesh(mgl64.Vec3{1, 1, 1}, Palette.Roof))
	child.Position = mgl64.Vec3{0, 1, 0}
	root := NewGroup("root", child)
	root.Position = mgl64.Vec3{10, 0, 0}
	root.Scale = mgl64.Vec3{2, 2, 2}

	r := &recorder{}
	root.Walk(mgl64.Ident4(), r)
	got := transformPoint(r.last["leaf"], mgl64.Vec3{})
	assertVecNear(t, mgl64.Vec3{10, 2, 0}, got, 1e-12)
}

func TestNodeLocal_RotatesAboutY(t *testing.T) {
	n := NewGroup("n")
	n.Yaw = 1.1
	p := transformPoint(n.Local(), mgl64.Vec3{0, 0, -1})
	facing := Pose{Yaw: 1.1}.Facing()
	assertVecNear(t, facing, p, 1e-12)
}

func TestSheetMesh_FacesUp(t *testing.T) {
	m := SheetMesh(5, 5, Palette.Ground)
	for _, tri := range m.Triangles {
		assertVecNear(t, mgl64.Vec3{0, 1, 0}, tri.Normal(), 1e-12)
	}
}

func TestMeshSurface_BoundsAndBackfaceHit(t *testing.T) {
	s := boxSurface("box", mgl64.Vec3{4, 4, 4}, mgl64.Vec3{0, 0, 0})
	assert.Equal(t, mgl64.Vec3{-2, 0, -2}, s.Bounds().Min)
	assert.Equal(t, mgl64.Vec3{2, 4, 2}, s.Bounds().Max)

	// From inside the box the far wall is still hit.
	d, ok := s.Intersect(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{1, 0, 0})
	require.True(t, ok)
	assert.InDelta(t, 2.0, d, 1e-12)
}
