package gaze

import (
	"encoding/json"
	"fmt"
)

// gazeStep is a single action in a gaze script.
//
// A fixate, move or click target is either an absolute point (x, y) or the
// center of an element (element), optionally of one of its keys (key).
type gazeStep struct {
	Action  string  `json:"action"`
	Element string  `json:"element,omitempty"`
	Key     string  `json:"key,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
}

// gazeScriptFile is the top-level JSON structure of a gaze script.
type gazeScriptFile struct {
	Steps []gazeStep `json:"steps"`
}

var gazeActions = map[string]bool{
	"fixate":     true,
	"move":       true,
	"wait":       true,
	"click":      true,
	"interact":   true,
	"selectNext": true,
}

// GazeScript drives a Layout with scripted gaze samples at a fixed time
// step, for demos and deterministic multi-tick tests.
//
//	{"steps": [
//	  {"action": "fixate", "element": "keyboard", "key": "q", "frames": 120},
//	  {"action": "move", "fromX": 0, "fromY": 0, "toX": 200, "toY": 100, "frames": 30},
//	  {"action": "wait", "frames": 10},
//	  {"action": "selectNext"},
//	  {"action": "interact"}
//	]}
type GazeScript struct {
	steps  []gazeStep
	cursor int
	frame  int // frames already spent on steps[cursor]
	frames int // total frames run
}

// LoadGazeScript parses a JSON gaze script.
func LoadGazeScript(jsonData []byte) (*GazeScript, error) {
	var script gazeScriptFile
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidScript)
	}
	for i, st := range script.Steps {
		if !gazeActions[st.Action] {
			return nil, fmt.Errorf("%w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
		if st.Frames < 0 {
			return nil, fmt.Errorf("%w: step %d: negative frames", ErrInvalidScript, i)
		}
		if st.Key != "" && st.Element == "" {
			return nil, fmt.Errorf("%w: step %d: key without element", ErrInvalidScript, i)
		}
	}
	return &GazeScript{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (s *GazeScript) Done() bool {
	return s.cursor >= len(s.steps)
}

// Frames returns how many frames the script has run.
func (s *GazeScript) Frames() int {
	return s.frames
}

// Step runs one frame: it computes this frame's input, calls Update and
// advances the script. Returns false once the script is done.
func (s *GazeScript) Step(l *Layout, dt float64) bool {
	if s.Done() {
		return false
	}
	st := s.steps[s.cursor]
	frames := max(1, st.Frames)
	// Targets read geometry, which must be current before the update.
	l.layoutFrames()

	var in *Input
	switch st.Action {
	case "fixate":
		if p, ok := s.target(l, st, st.X, st.Y); ok {
			in = &Input{GazeX: p.X, GazeY: p.Y}
		}
	case "move":
		t := 1.0
		if frames > 1 {
			t = float64(s.frame) / float64(frames-1)
		}
		in = &Input{
			GazeX: st.FromX + (st.ToX-st.FromX)*t,
			GazeY: st.FromY + (st.ToY-st.FromY)*t,
		}
	case "click":
		if p, ok := s.target(l, st, st.X, st.Y); ok {
			in = &Input{GazeX: p.X, GazeY: p.Y, Click: s.frame == 0}
		}
	case "interact":
		if s.frame == 0 {
			l.InteractWithSelectedInteractiveElement()
		}
	case "selectNext":
		if s.frame == 0 {
			l.SelectNextInteractiveElement()
		}
	}

	l.Update(dt, in)
	s.frames++
	s.frame++
	if s.frame >= frames {
		s.cursor++
		s.frame = 0
	}
	return !s.Done()
}

// Run executes the remaining script, drawing every frame to r when r is not
// nil. Returns the number of frames run.
func (s *GazeScript) Run(l *Layout, dt float64, r Renderer) int {
	start := s.frames
	for !s.Done() {
		s.Step(l, dt)
		if r != nil {
			l.Draw(r)
		}
	}
	return s.frames - start
}

// target resolves the gaze point of a step.
func (s *GazeScript) target(l *Layout, st gazeStep, x, y float64) (Vec2, bool) {
	if st.Element == "" {
		return Vec2{x, y}, true
	}
	e, ok := l.ElementByID(st.Element)
	if !ok {
		l.warn(OperationRuntime, "gaze script targets unknown element", "id", st.Element)
		return Vec2{}, false
	}
	if st.Key != "" {
		r := []rune(st.Key)
		c, ok := e.KeyCenter(r[0])
		if !ok {
			l.warn(OperationRuntime, "gaze script targets unknown key", "id", st.Element, "key", st.Key)
			return Vec2{}, false
		}
		return c, true
	}
	return e.Bounds().Center(), true
}
