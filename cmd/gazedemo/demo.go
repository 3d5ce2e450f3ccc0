package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/phanxgames/gaze"
)

// demo holds the layout and the text typed so far.
type demo struct {
	layout *gaze.Layout
	text   strings.Builder
	help   int // floating frame index
	out    io.Writer
}

// newDemo builds the demo tree:
//
//	root (vertical)
//	├── output text block
//	├── controls (horizontal): sensor, clear, help, drop menu
//	└── keyboard
//
// and a hidden floating help frame with a close button.
func newDemo(width, height int, cfg gaze.Config, out io.Writer) (*demo, error) {
	layout, err := gaze.NewLayout(width, height, cfg)
	if err != nil {
		return nil, err
	}
	d := &demo{layout: layout, out: out}

	output := gaze.NewTextBlock("output", "output", "")
	output.RelativeScale = 0.5

	menu := gaze.NewStack("menu", "menu", gaze.OrientationVertical,
		gaze.NewCircleButton("upper", "button", "ABC", true),
		gaze.NewCircleButton("lower", "button", "abc", true),
	)
	controls := gaze.NewStack("controls", "", gaze.OrientationHorizontal,
		gaze.NewSensor("sensor", "sensor", "scroll"),
		gaze.NewBoxButton("clear", "button", "clear", false),
		gaze.NewBoxButton("help", "button", "help", false),
		gaze.NewDropButton("drop", "button", "menu", menu),
	)
	controls.Border = 0.1

	keyboard := gaze.NewKeyboard("keyboard", "keys")
	keyboard.RelativeScale = 2

	root := gaze.NewStack("root", "", gaze.OrientationVertical, output, controls, keyboard)
	if err := layout.AttachRoot(root); err != nil {
		return nil, err
	}

	help := gaze.NewStack("helpFrame", "panel", gaze.OrientationVertical,
		gaze.NewTextBlock("helpText", "panel", "Look at a key to type. Tab selects, Enter interacts."),
		gaze.NewBoxButton("close", "button", "close", false),
	)
	if d.help, err = layout.AddFloatingFrame(help, 0.2, 0.2, 0.6, 0.4, false, true); err != nil {
		return nil, err
	}

	if err := d.registerListeners(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *demo) registerListeners() error {
	l := d.layout
	if _, err := l.RegisterKeyboardListener("keyboard", gaze.Strong[gaze.KeyboardListener](
		gaze.KeyboardListenerFunc(func(l *gaze.Layout, id string, key gaze.KeyPress) {
			d.text.WriteString(key.UTF8)
			d.showText(l)
		}))); err != nil {
		return err
	}
	if _, err := l.RegisterButtonListener("clear", gaze.Strong[gaze.ButtonListener](
		gaze.ButtonListenerFuncs{OnHit: func(l *gaze.Layout, id string) {
			d.text.Reset()
			d.showText(l)
		}})); err != nil {
		return err
	}
	if _, err := l.RegisterButtonListener("help", gaze.Strong[gaze.ButtonListener](
		gaze.ButtonListenerFuncs{OnHit: func(l *gaze.Layout, id string) {
			_ = l.SetFloatingFrameVisibility(d.help, true, false)
			_ = l.MoveFloatingFrameToFront(d.help)
		}})); err != nil {
		return err
	}
	if _, err := l.RegisterButtonListener("close", gaze.Strong[gaze.ButtonListener](
		gaze.ButtonListenerFuncs{OnHit: func(l *gaze.Layout, id string) {
			_ = l.SetFloatingFrameVisibility(d.help, false, false)
		}})); err != nil {
		return err
	}
	return nil
}

// showText swaps the output block for one showing the current text. It runs
// inside a listener, between traversals.
func (d *demo) showText(l *gaze.Layout) {
	output := gaze.NewTextBlock("output", "output", d.text.String())
	output.RelativeScale = 0.5
	if err := l.ReplaceElement("output", output, false); err != nil {
		l.Logger().Error(err, "replacing output")
	}
}

// printSink writes every drained notification as one line.
type printSink struct {
	w io.Writer
}

func (s printSink) EmitNotification(ev gaze.NotificationEvent) {
	switch ev.Kind {
	case gaze.NotifySensorPenetrated:
		// Level-triggered, too chatty for a line per tick.
	case gaze.NotifyKeyPressed:
		fmt.Fprintf(s.w, "%s %s %s\n", ev.Kind, ev.ElementID, ev.Text)
	default:
		fmt.Fprintf(s.w, "%s %s\n", ev.Kind, ev.ElementID)
	}
}
