package city

import "github.com/go-gl/mathgl/mgl64"

// EventType names something the world reports to hosts.
type EventType int

const (
	EventBoarded EventType = iota
	EventDisembarked
	EventLanded
	EventWallBlocked
	EventNodeReady
	numEventTypes
)

var eventNames = [numEventTypes]string{"boarded", "disembarked", "landed", "wall-blocked", "node-ready"}

func (t EventType) String() string {
	if t < 0 || t >= numEventTypes {
		return "unknown"
	}
	return eventNames[t]
}

type Event struct {
	Type     EventType
	Position mgl64.Vec3
	Vehicle  *Vehicle // board/disembark
	Model    string   // node-ready
	Fallback bool     // node-ready with a substituted model
}

type EventHandler func(Event)

// EventBus delivers events synchronously on the logic thread, in
// subscription order.
type EventBus struct {
	handlers [numEventTypes][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	if t < 0 || t >= numEventTypes {
		return
	}
	eb.handlers[t] = append(eb.handlers[t], fn)
}

func (eb *EventBus) Emit(e Event) {
	if e.Type < 0 || e.Type >= numEventTypes {
		return
	}
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
