package ecs

import (
	"github.com/phanxgames/gaze"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// NotificationEventType is the Donburi event type for drained gaze
// notifications.
var NotificationEventType = events.NewEventType[gaze.NotificationEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued by the world and consumed with Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) gaze.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitNotification(ev gaze.NotificationEvent) {
	NotificationEventType.Publish(s.world, ev)
}
