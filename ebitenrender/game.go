package ebitenrender

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/gaze"
)

// InputSource supplies one input sample per tick.
type InputSource interface {
	Read() *gaze.Input
}

// CursorInput treats the mouse cursor as the gaze point and the left mouse
// button as the discrete activation.
type CursorInput struct{}

// Read returns the current cursor sample.
func (CursorInput) Read() *gaze.Input {
	x, y := ebiten.CursorPosition()
	return &gaze.Input{
		GazeX: float64(x),
		GazeY: float64(y),
		Click: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background color.Color
	ShowFPS    bool
	// Script, when set, replaces live input until it is done.
	Script *gaze.GazeScript
	// Input defaults to CursorInput.
	Input InputSource
	// Styles maps style names to colors.
	Styles map[string]Style
	// ScreenshotDir receives the PNGs taken with F12. Defaults to
	// "screenshots".
	ScreenshotDir string
}

// Game runs a Layout inside the ebiten game loop. Tab selects the next
// interactive element and Enter interacts with it. F12 takes a screenshot.
type Game struct {
	layout   *gaze.Layout
	renderer *Renderer
	input    InputSource
	script   *gaze.GazeScript
	bg       color.Color
	showFPS  bool
	fps      *ebiten.Image
	fpsTimer float64

	screenshotDir string
	screenshots   []string
}

// NewGame wraps layout with the options of cfg.
func NewGame(layout *gaze.Layout, cfg RunConfig) *Game {
	g := &Game{
		layout:   layout,
		renderer: NewRenderer(cfg.Styles),
		input:    cfg.Input,
		script:   cfg.Script,
		bg:       cfg.Background,
		showFPS:  cfg.ShowFPS,

		screenshotDir: cfg.ScreenshotDir,
	}
	if g.screenshotDir == "" {
		g.screenshotDir = "screenshots"
	}
	if g.input == nil {
		g.input = CursorInput{}
	}
	if g.bg == nil {
		g.bg = color.Black
	}
	return g
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())
	if g.script != nil && !g.script.Done() {
		g.script.Step(g.layout, dt)
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
			g.layout.SelectNextInteractiveElement()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.layout.InteractWithSelectedInteractiveElement()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
			g.Screenshot("key")
		}
		g.layout.Update(dt, g.input.Read())
	}
	if g.showFPS {
		g.updateFPS(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	g.renderer.SetTarget(screen)
	g.layout.Draw(g.renderer)
	if g.showFPS && g.fps != nil {
		screen.DrawImage(g.fps, nil)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The logical screen always matches the
// layout resolution so cursor positions are in layout pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Size()
}

// updateFPS redraws the FPS overlay about twice per second.
func (g *Game) updateFPS(dt float64) {
	if g.fps == nil {
		g.fps = ebiten.NewImage(100, 32)
		g.fpsTimer = 0.5
	}
	g.fpsTimer += dt
	if g.fpsTimer < 0.5 {
		return
	}
	g.fpsTimer = 0
	g.fps.Clear()
	g.fps.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(g.fps, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
}

// Run opens a window and runs layout until the window is closed.
func Run(layout *gaze.Layout, cfg RunConfig) error {
	w, h := layout.Size()
	if cfg.Width > 0 && cfg.Height > 0 {
		w, h = cfg.Width, cfg.Height
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(cfg.Title)
	return ebiten.RunGame(NewGame(layout, cfg))
}
