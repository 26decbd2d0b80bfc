package city

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/rs/zerolog"
)

// City layout (world units).
const (
	GroundHalfSize  = 15000.0
	RoadScale       = 12.0
	RoadSpacing     = 60.0
	RoadLift        = 0.1
	BuildingSpacing = 85.0
	BuildingJitter  = 50.0
	VehicleScale    = 4.0
	VehicleX        = 25.0
	VehicleY        = 0.5
	VehicleSpacing  = 50.0
	AvatarScale     = 0.7
)

// StreetOffsets are the X positions of the four building rows.
var StreetOffsets = []float64{-250, -110, 110, 250}

type Role uint8

const (
	RoleRoad Role = iota
	RoleBuilding
	RoleVehicle
	RoleAvatar
)

func (r Role) collidable() bool { return r == RoleBuilding }

type placement struct {
	role     Role
	position mgl64.Vec3
	scale    mgl64.Vec3
	vehicle  *Vehicle
}

// Builder populates a World. Layout decisions are made up front in Build;
// Pump attaches models as their loads complete.
type Builder struct {
	world   *World
	loader  *AsyncLoader
	rng     *Rand
	log     zerolog.Logger
	ticket  int
	pending map[int]placement
}

func NewBuilder(w *World, l *AsyncLoader, seed uint64, log zerolog.Logger) *Builder {
	return &Builder{
		world:   w,
		loader:  l,
		rng:     NewRand(seed),
		log:     log,
		pending: make(map[int]placement),
	}
}

// Build lays out ground, roads, buildings, vehicles and the avatar, and
// issues one load per model.
func (b *Builder) Build() {
	w := b.world

	ground := NewMeshNode("ground", SheetMesh(GroundHalfSize, GroundHalfSize, Palette.Ground))
	w.Scene.Add(ground)
	w.Index.Register(&Plane{Label: "ground", HalfX: GroundHalfSize, HalfZ: GroundHalfSize})

	for i, m := range RoadModels {
		b.request(m, placement{
			role:     RoleRoad,
			position: mgl64.Vec3{0, RoadLift, -float64(i) * RoadSpacing},
			scale:    mgl64.Vec3{RoadScale, RoadScale, RoadScale},
		})
	}

	for _, x := range StreetOffsets {
		for i, m := range BuildingModels {
			base := b.rng.RangeF(20, 30)
			height := base * b.rng.RangeF(1.2, 3.2)
			z := -float64(i)*BuildingSpacing - b.rng.Float64()*BuildingJitter
			b.request(m, placement{
				role:     RoleBuilding,
				position: mgl64.Vec3{x, 0, z},
				scale:    mgl64.Vec3{base, height, base},
			})
		}
	}

	for i, m := range VehicleModels {
		v := NewVehicle(m, mgl64.Vec3{VehicleX, VehicleY, -float64(i) * VehicleSpacing})
		w.AddVehicle(v)
		b.request(m, placement{
			role:    RoleVehicle,
			scale:   mgl64.Vec3{VehicleScale, VehicleScale, VehicleScale},
			vehicle: v,
		})
	}

	b.request(AvatarModel, placement{
		role:  RoleAvatar,
		scale: mgl64.Vec3{AvatarScale, AvatarScale, AvatarScale},
	})

	b.log.Info().Int("requests", len(b.pending)).Int("vehicles", len(w.Vehicles)).Msg("world layout issued")
}

func (b *Builder) request(model string, p placement) {
	b.ticket++
	b.pending[b.ticket] = p
	b.loader.Request(LoadRequest{Ticket: b.ticket, Model: model})
}

// Pending counts layout slots whose model has not been attached yet.
func (b *Builder) Pending() int { return len(b.pending) }

// Pump attaches every completed load. Call at the start of a frame.
func (b *Builder) Pump() int {
	done := b.loader.Drain()
	for _, r := range done {
		b.Apply(r)
	}
	return len(done)
}

// Apply places one loaded model. Failed loads get a fallback box so
// collision still works where the model should have been.
func (b *Builder) Apply(r NodeReady) {
	p, ok := b.pending[r.Ticket]
	if !ok {
		return
	}
	delete(b.pending, r.Ticket)

	node := r.Node
	fallback := false
	if r.Err != nil || node == nil {
		b.log.Warn().Err(r.Err).Str("model", r.Model).Msg("using fallback model")
		node = FallbackNode(r.Model)
		fallback = true
	}
	node.Scale = p.scale

	switch p.role {
	case RoleVehicle:
		p.vehicle.Node = node
		p.vehicle.syncNode()
		b.world.Scene.Add(node)
	case RoleAvatar:
		b.world.Player.Node.Add(node)
	default:
		node.Position = p.position
		b.world.Scene.Add(node)
	}

	if p.role.collidable() {
		c := &surfaceCollector{model: r.Model}
		node.Walk(mgl64.Ident4(), c)
		for _, s := range c.out {
			b.world.Index.Register(s)
		}
	}

	b.world.Events.Emit(Event{Type: EventNodeReady, Position: node.Position, Model: r.Model, Fallback: fallback})
}

// surfaceCollector turns each mesh leaf into a world-space surface.
type surfaceCollector struct {
	model string
	out   []Surface
}

func (c *surfaceCollector) Group(*Node, mgl64.Mat4) {}

func (c *surfaceCollector) Mesh(n *Node, m *Mesh, world mgl64.Mat4) {
	c.out = append(c.out, NewMeshSurface(c.model+"/"+n.Name, m.Transformed(world)))
}
