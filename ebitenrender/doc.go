// Package ebitenrender draws gaze layouts with [Ebitengine] and runs them in
// the ebiten game loop, with the mouse cursor standing in for the gaze.
//
//	layout, _ := gaze.NewLayout(1280, 720, gaze.DefaultConfig())
//	// ... attach a tree ...
//	err := ebitenrender.Run(layout, ebitenrender.RunConfig{Title: "demo"})
//
// [Ebitengine]: https://ebitengine.org
package ebitenrender
