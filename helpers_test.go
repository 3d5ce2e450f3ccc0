package gaze

import "testing"

const testDT = 1.0 / 60

// recordedDraw is one Draw call seen by recordingRenderer.
type recordedDraw struct {
	shape  Shape
	style  string
	bounds Rect
	params DrawParams
}

// recordingRenderer records every fetch and draw.
type recordingRenderer struct {
	fetches int
	draws   []recordedDraw
}

type recordedDrawable struct {
	shape Shape
	style string
}

func (r *recordingRenderer) Fetch(shape Shape, style string) Drawable {
	r.fetches++
	return recordedDrawable{shape, style}
}

func (r *recordingRenderer) Draw(d Drawable, bounds Rect, p DrawParams) {
	rd := d.(recordedDrawable)
	r.draws = append(r.draws, recordedDraw{shape: rd.shape, style: rd.style, bounds: bounds, params: p})
}

func (r *recordingRenderer) reset() {
	r.draws = nil
}

// styles returns the style of every recorded draw in order.
func (r *recordingRenderer) styles() []string {
	out := make([]string, len(r.draws))
	for i, d := range r.draws {
		out[i] = d.style
	}
	return out
}

func newTestLayout(t *testing.T, root *Element) *Layout {
	t.Helper()
	l, err := NewLayout(600, 400, DefaultConfig())
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	if root != nil {
		if err := l.AttachRoot(root); err != nil {
			t.Fatalf("AttachRoot: %v", err)
		}
	}
	return l
}

// run updates l n times with the same input sample.
func run(l *Layout, n int, in *Input) {
	for i := 0; i < n; i++ {
		var sample *Input
		if in != nil {
			s := *in
			sample = &s
		}
		l.Update(testDT, sample)
	}
}

// at returns an input sample at the center of e.
func at(e *Element) *Input {
	c := e.Bounds().Center()
	return &Input{GazeX: c.X, GazeY: c.Y}
}

// warnings collects every warning of l.
func warnings(l *Layout) *[]string {
	var got []string
	l.SetWarningFunc(func(op Operation, msg string) {
		got = append(got, op.String()+": "+msg)
	})
	return &got
}

// events collects every drained notification of l as "KIND id".
func events(l *Layout) *[]string {
	var got []string
	l.SetEventSink(EventSinkFunc(func(ev NotificationEvent) {
		got = append(got, ev.Kind.String()+" "+ev.ElementID)
	}))
	return &got
}

// count returns how often s occurs in list.
func count(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}
