package city

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/queue"
)

var (
	ErrUnknownModel = errors.New("unknown model")
	ErrLoadFailed   = errors.New("asset load failed")
)

// AssetLoader turns a model id into a scene subtree. It may block and is
// called off the logic thread.
//
//go:generate go tool mockgen -destination=./mocks/loader_mock.go -package=mocks . AssetLoader
type AssetLoader interface {
	Load(ctx context.Context, id string) (*Node, error)
}

// Model catalog.
var (
	RoadModels     = []string{"roadStart", "roadStraight", "roadRamp", "roadCornerLarge"}
	BuildingModels = buildingIDs("abcdefghijklmnopqrst")
	VehicleModels  = []string{"police", "ambulance", "tractor", "taxi", "suv", "firetruck"}
)

const AvatarModel = "stan"

func buildingIDs(letters string) []string {
	out := make([]string, len(letters))
	for i := range letters {
		out[i] = "building-" + letters[i:i+1]
	}
	return out
}

// ProceduralLoader builds box models for the catalog. Latency and FailRate
// simulate a slow or unreliable asset source; failure is a pure function of
// Seed and the model id.
type ProceduralLoader struct {
	Latency  time.Duration
	FailRate float64
	Seed     uint64
}

func (l *ProceduralLoader) Load(ctx context.Context, id string) (*Node, error) {
	if l.Latency > 0 {
		timer := time.NewTimer(l.Latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.FailRate > 0 && unitFloat(hashString(l.Seed, id)) < l.FailRate {
		return nil, fmt.Errorf("load %s: %w", id, ErrLoadFailed)
	}
	n, ok := buildModel(id)
	if !ok {
		return nil, fmt.Errorf("load %s: %w", id, ErrUnknownModel)
	}
	return n, nil
}

func buildModel(id string) (*Node, bool) {
	switch {
	case strings.HasPrefix(id, "building-") && len(id) == len("building-a"):
		k := int(id[len(id)-1]) - 'a'
		if k < 0 || k >= 20 {
			return nil, false
		}
		return buildingModel(id, k), true
	case strings.HasPrefix(id, "road"):
		for _, r := range RoadModels {
			if r == id {
				return roadModel(id), true
			}
		}
	case id == AvatarModel:
		return avatarModel(), true
	default:
		if col, ok := vehicleColors[id]; ok {
			return vehicleModel(id, col), true
		}
	}
	return nil, false
}

func buildingModel(id string, k int) *Node {
	w := 1 + float64(k%3)*0.15
	d := 1 + float64(k%4)*0.1
	cols := [3]RGB{Palette.BuildingA, Palette.BuildingB, Palette.BuildingC}
	body := NewMeshNode("body", BoxMesh(mgl64.Vec3{w, 1, d}, cols[k%3]))
	roof := NewMeshNode("roof", BoxMesh(mgl64.Vec3{w * 0.8, 0.08, d * 0.8}, Palette.Roof))
	roof.Position = mgl64.Vec3{0, 1, 0}
	return NewGroup(id, body, roof)
}

func roadModel(id string) *Node {
	h := 0.02
	if id == "roadRamp" {
		h = 0.1
	}
	deck := NewMeshNode("deck", BoxMesh(mgl64.Vec3{1, h, 5}, Palette.Road))
	stripe := NewMeshNode("stripe", BoxMesh(mgl64.Vec3{0.05, 0.001, 5}, Palette.Stripe))
	stripe.Position = mgl64.Vec3{0, h, 0}
	return NewGroup(id, deck, stripe)
}

func vehicleModel(id string, col RGB) *Node {
	chassis := NewMeshNode("chassis", BoxMesh(mgl64.Vec3{1, 0.5, 2}, col))
	cabin := NewMeshNode("cabin", BoxMesh(mgl64.Vec3{0.8, 0.4, 1}, Palette.Glass))
	cabin.Position = mgl64.Vec3{0, 0.5, 0.1}
	return NewGroup(id, chassis, cabin)
}

func avatarModel() *Node {
	legs := NewMeshNode("legs", BoxMesh(mgl64.Vec3{0.5, 1.2, 0.3}, Palette.Road))
	torso := NewMeshNode("torso", BoxMesh(mgl64.Vec3{0.7, 1.0, 0.35}, Palette.Shirt))
	torso.Position = mgl64.Vec3{0, 1.2, 0}
	head := NewMeshNode("head", BoxMesh(mgl64.Vec3{0.4, 0.4, 0.4}, Palette.Skin))
	head.Position = mgl64.Vec3{0, 2.2, 0}
	return NewGroup(AvatarModel, legs, torso, head)
}

// FallbackNode is the unit box substituted for a model that failed to load.
func FallbackNode(id string) *Node {
	return NewGroup(id, NewMeshNode("fallback", BoxMesh(mgl64.Vec3{1, 1, 1}, Palette.Fallback)))
}

// LoadRequest names a model and the ticket its result is filed under.
type LoadRequest struct {
	Ticket int
	Model  string
}

// NodeReady is a finished load waiting for the logic thread.
type NodeReady struct {
	Ticket int
	Model  string
	Node   *Node
	Err    error
}

// AsyncLoader runs loads on goroutines and queues their results. Drain is
// called from the frame loop; nothing else touches the world.
type AsyncLoader struct {
	ctx      context.Context
	loader   AssetLoader
	ready    *queue.Queue[NodeReady]
	wg       sync.WaitGroup
	inflight atomic.Int64
}

func NewAsyncLoader(ctx context.Context, l AssetLoader) *AsyncLoader {
	return &AsyncLoader{
		ctx:    ctx,
		loader: l,
		ready:  queue.New[NodeReady](),
	}
}

func (a *AsyncLoader) Request(req LoadRequest) {
	a.wg.Add(1)
	a.inflight.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.inflight.Add(-1)
		n, err := a.loader.Load(a.ctx, req.Model)
		a.ready.Push(NodeReady{Ticket: req.Ticket, Model: req.Model, Node: n, Err: err})
	}()
}

// Drain returns every result queued since the last call.
func (a *AsyncLoader) Drain() []NodeReady {
	return a.ready.GetAndEmpty()
}

// InFlight counts loads that have not yet been queued.
func (a *AsyncLoader) InFlight() int {
	return int(a.inflight.Load())
}

// Wait blocks until every requested load has been queued.
func (a *AsyncLoader) Wait() {
	a.wg.Wait()
}
