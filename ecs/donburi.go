package ecs

import (
	"github.com/phanxgames/easel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for easel gesture events.
// Subscribe to this in your ECS systems to receive click, drag, drop,
// hover, and long-press events.
var GestureEventType = events.NewEventType[easel.GestureEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Attach it
// with GestureDetector.SetEventSink; gesture events are published to
// GestureEventType and can be consumed with events.Subscribe and
// ProcessEvents.
func NewDonburiSink(world donburi.World) easel.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitGesture(event easel.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}
