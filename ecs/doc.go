// Package ecs forwards drained gaze notifications into an ECS world.
//
// [NewDonburiSink] publishes every notification a Layout drains (button
// hits, sensor penetration, key presses) to a [Donburi] world as typed
// events. Subscribe to [NotificationEventType] in your ECS systems to
// receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	layout.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
