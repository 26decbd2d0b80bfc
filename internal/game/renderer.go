//go:build !android

package game

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/city"
)

// Scene lighting and fog.
const (
	AmbientIntensity = 0.8
	SunIntensity     = 1.2
	FogNear          = 100.0
	FogFar           = 3000.0
)

var sunPosition = mgl32.Vec3{200, 500, 200}

// floatsPerVertex is position (3) + normal (3).
const floatsPerVertex = 6

// glOffset converts a byte offset to unsafe.Pointer for OpenGL VBO offset params.
func glOffset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

// toMat32 narrows a core transform for upload.
func toMat32(m mgl64.Mat4) mgl32.Mat4 {
	var out mgl32.Mat4
	for i := range m {
		out[i] = float32(m[i])
	}
	return out
}

// meshVertices flattens a mesh into interleaved position/normal floats.
func meshVertices(m *city.Mesh) []float32 {
	out := make([]float32, 0, len(m.Triangles)*3*floatsPerVertex)
	for _, t := range m.Triangles {
		n := t.Normal()
		for _, p := range [3]mgl64.Vec3{t.A, t.B, t.C} {
			out = append(out,
				float32(p.X()), float32(p.Y()), float32(p.Z()),
				float32(n.X()), float32(n.Y()), float32(n.Z()))
		}
	}
	return out
}

// gpuMesh is one uploaded mesh.
type gpuMesh struct {
	vao, vbo uint32
	count    int32
}

type Renderer struct {
	prog uint32

	uModel        int32
	uView         int32
	uProj         int32
	uColor        int32
	uAmbient      int32
	uSunDir       int32
	uSunIntensity int32
	uCameraPos    int32
	uFogColor     int32
	uFogNear      int32
	uFogFar       int32

	// Meshes are immutable once built, so the pointer is a stable key.
	meshes map[*city.Mesh]*gpuMesh

	drawCalls int
}

func NewRenderer() (*Renderer, error) {
	prog, err := buildProgram(sceneVertSrc, sceneFragSrc)
	if err != nil {
		return nil, fmt.Errorf("scene program: %w", err)
	}
	r := &Renderer{prog: prog, meshes: make(map[*city.Mesh]*gpuMesh)}
	r.uModel = gl.GetUniformLocation(prog, gl.Str("uModel\x00"))
	r.uView = gl.GetUniformLocation(prog, gl.Str("uView\x00"))
	r.uProj = gl.GetUniformLocation(prog, gl.Str("uProj\x00"))
	r.uColor = gl.GetUniformLocation(prog, gl.Str("uColor\x00"))
	r.uAmbient = gl.GetUniformLocation(prog, gl.Str("uAmbient\x00"))
	r.uSunDir = gl.GetUniformLocation(prog, gl.Str("uSunDir\x00"))
	r.uSunIntensity = gl.GetUniformLocation(prog, gl.Str("uSunIntensity\x00"))
	r.uCameraPos = gl.GetUniformLocation(prog, gl.Str("uCameraPos\x00"))
	r.uFogColor = gl.GetUniformLocation(prog, gl.Str("uFogColor\x00"))
	r.uFogNear = gl.GetUniformLocation(prog, gl.Str("uFogNear\x00"))
	r.uFogFar = gl.GetUniformLocation(prog, gl.Str("uFogFar\x00"))

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.Disable(gl.CULL_FACE)
	sr, sg, sb := city.Palette.Sky.Floats()
	gl.ClearColor(sr, sg, sb, 1.0)
	return r, nil
}

func (r *Renderer) upload(m *city.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	verts := meshVertices(m)
	g := &gpuMesh{count: int32(len(verts) / floatsPerVertex)}
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	if len(verts) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	}
	stride := int32(floatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, glOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, glOffset(3*4))
	gl.BindVertexArray(0)
	r.meshes[m] = g
	return g
}

// Draw renders every visible mesh of the world from its chase camera.
func (r *Renderer) Draw(w *city.World, fbW, fbH int) {
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	cam := w.Camera
	view := toMat32(cam.View())
	proj := toMat32(cam.Projection())
	eye := cam.Position
	sun := sunPosition.Normalize()
	fr, fg, fb := city.Palette.Sky.Floats()

	gl.UseProgram(r.prog)
	gl.UniformMatrix4fv(r.uView, 1, false, &view[0])
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform1f(r.uAmbient, AmbientIntensity)
	gl.Uniform3f(r.uSunDir, sun.X(), sun.Y(), sun.Z())
	gl.Uniform1f(r.uSunIntensity, SunIntensity)
	gl.Uniform3f(r.uCameraPos, float32(eye.X()), float32(eye.Y()), float32(eye.Z()))
	gl.Uniform3f(r.uFogColor, fr, fg, fb)
	gl.Uniform1f(r.uFogNear, FogNear)
	gl.Uniform1f(r.uFogFar, FogFar)

	r.drawCalls = 0
	w.Scene.Walk(mgl64.Ident4(), r)
	gl.BindVertexArray(0)
}

func (r *Renderer) Group(*city.Node, mgl64.Mat4) {}

func (r *Renderer) Mesh(_ *city.Node, m *city.Mesh, world mgl64.Mat4) {
	g := r.upload(m)
	if g.count == 0 {
		return
	}
	model := toMat32(world)
	cr, cg, cb := m.Color.Floats()
	gl.UniformMatrix4fv(r.uModel, 1, false, &model[0])
	gl.Uniform3f(r.uColor, cr, cg, cb)
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, g.count)
	r.drawCalls++
}

// DrawCalls reports how many meshes the last frame drew.
func (r *Renderer) DrawCalls() int { return r.drawCalls }

func (r *Renderer) Destroy() {
	for _, g := range r.meshes {
		gl.DeleteBuffers(1, &g.vbo)
		gl.DeleteVertexArrays(1, &g.vao)
	}
	r.meshes = nil
	gl.DeleteProgram(r.prog)
}
