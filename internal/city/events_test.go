package city

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_DeliversInSubscriptionOrder(t *testing.T) {
	bus := NewEventBus()
	var got []string
	bus.Subscribe(EventLanded, func(Event) { got = append(got, "first") })
	bus.Subscribe(EventLanded, func(Event) { got = append(got, "second") })
	bus.Subscribe(EventBoarded, func(Event) { got = append(got, "other") })

	bus.Emit(Event{Type: EventLanded})
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestEventBus_IgnoresUnknownTypes(t *testing.T) {
	bus := NewEventBus()
	bus.Subscribe(EventType(42), func(Event) { t.Fatal("unexpected delivery") })
	bus.Emit(Event{Type: EventType(42)})
	bus.Emit(Event{Type: EventType(-1)})
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "wall-blocked", EventWallBlocked.String())
	assert.Equal(t, "node-ready", EventNodeReady.String())
	assert.Equal(t, "unknown", EventType(9).String())
}
