// Package gaze is a gaze-driven user interface scene graph.
//
// Elements form a tree that is updated every frame with a live gaze sample
// (eye tracker or pointer) and activated by dwell: sustained fixation, not a
// discrete click, fills a threshold that fires the element. Trees live in
// frames, the main frame covering the layout and any number of floating
// frames with their own visibility and z-order.
//
// # Quick start
//
// Build a tree with the typed constructors, attach it to a [Layout] and call
// [Layout.Update] and [Layout.Draw] every frame:
//
//	layout, _ := gaze.NewLayout(1280, 720, gaze.DefaultConfig())
//	root := gaze.NewStack("root", "", gaze.OrientationVertical,
//		gaze.NewSensor("scroll", "sensor", "arrow.png"),
//		gaze.NewKeyboard("keyboard", "keys"),
//	)
//	_ = layout.AttachRoot(root)
//	_, _ = layout.RegisterKeyboardListener("keyboard", gaze.Strong[gaze.KeyboardListener](
//		gaze.KeyboardListenerFunc(func(l *gaze.Layout, id string, key gaze.KeyPress) {
//			fmt.Print(key.UTF8)
//		})))
//
//	// every frame
//	layout.Update(dt, &gaze.Input{GazeX: x, GazeY: y})
//	layout.Draw(renderer)
//
// The package never draws itself. [Renderer] is the graphics capability it
// consumes; gaze/ebitenrender implements it on [Ebitengine].
//
// # Tick
//
// One Update runs to completion: retired subtrees are destroyed, pending
// resizes are applied, frames are updated front to back and elements may
// enqueue notifications. The queue is then drained in enqueue order:
// listeners run only there, between traversals, so they may replace
// elements or reorder frames safely. A listener that panics is logged and
// the remaining notifications are still delivered.
//
// # Listeners
//
// Listeners are registered per element id and typed by capability
// ([ButtonListener], [SensorListener], [KeyboardListener]). A [ListenerRef]
// is either [Strong] or [Weak]; an expired weak listener is skipped and
// dropped. Drained notifications can also be forwarded to an [EventSink],
// for example the Donburi bridge in gaze/ecs.
//
// [Ebitengine]: https://ebitengine.org
package gaze
