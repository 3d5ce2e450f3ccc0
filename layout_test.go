package gaze

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewLayoutRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AnimationDuration = 0
	if _, err := NewLayout(100, 100, cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestAttachRoot(t *testing.T) {
	l := newTestLayout(t, nil)
	root := NewStack("root", "", OrientationVertical, NewBlock("a", ""), NewBlock("b", ""))
	if err := l.AttachRoot(root); err != nil {
		t.Fatal(err)
	}
	if l.Root() != root || root.Layout() != l || root.Frame() != l.MainFrame() {
		t.Error("root not bound to the main frame")
	}
	for _, id := range []string{"root", "a", "b"} {
		if !l.CheckForID(id) {
			t.Errorf("id %q not registered", id)
		}
	}
	if err := l.AttachRoot(NewBlank("", "")); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("second AttachRoot err = %v, want ErrInvalidElement", err)
	}
}

func TestAttachRootDuplicateIDLeavesRegistryUnchanged(t *testing.T) {
	l := newTestLayout(t, nil)
	root := NewStack("root", "", OrientationVertical, NewBlock("a", ""), NewBlock("a", ""))
	if err := l.AttachRoot(root); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("err = %v, want ErrDuplicateID", err)
	}
	if l.CheckForID("root") || l.CheckForID("a") {
		t.Error("failed attach registered ids")
	}
	if l.Root() != nil {
		t.Error("failed attach set the root")
	}
}

func TestRegisterID(t *testing.T) {
	a := NewBlock("a", "")
	l := newTestLayout(t, a)
	other := NewBlock("", "")

	if err := l.RegisterID("alias", a); err != nil {
		t.Fatal(err)
	}
	if err := l.RegisterID("alias", a); err != nil {
		t.Errorf("registering the same element again: %v", err)
	}
	if err := l.RegisterID("alias", other); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("err = %v, want ErrDuplicateID", err)
	}
	if e, _ := l.ElementByID("alias"); e != a {
		t.Error("duplicate registration changed the registry")
	}
}

func TestStackSplitsByRelativeScale(t *testing.T) {
	a := NewBlock("a", "")
	b := NewBlock("b", "")
	b.RelativeScale = 2
	l := newTestLayout(t, NewStack("root", "", OrientationHorizontal, a, b))
	l.layoutFrames()

	if diff := cmp.Diff(Rect{0, 0, 200, 400}, a.Bounds()); diff != "" {
		t.Errorf("a bounds (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Rect{200, 0, 400, 400}, b.Bounds()); diff != "" {
		t.Errorf("b bounds (-want +got):\n%s", diff)
	}
}

func TestStackGivesRoundingRemainderToLastChild(t *testing.T) {
	children := []*Element{NewBlock("", ""), NewBlock("", ""), NewBlock("", "")}
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, children...))
	l.layoutFrames()

	heights := []int{children[0].Bounds().Height, children[1].Bounds().Height, children[2].Bounds().Height}
	if diff := cmp.Diff([]int{133, 133, 134}, heights); diff != "" {
		t.Errorf("heights (-want +got):\n%s", diff)
	}
}

func TestBorderShrinksElement(t *testing.T) {
	b := NewBlock("b", "")
	b.Border = 0.2
	l := newTestLayout(t, b)
	l.layoutFrames()

	// Horizontal orientation measures the border from the height.
	if diff := cmp.Diff(Rect{40, 40, 520, 320}, b.Bounds()); diff != "" {
		t.Errorf("bounds (-want +got):\n%s", diff)
	}
}

func TestAdaptiveScalingGrowsDwelledChild(t *testing.T) {
	b := NewBoxButton("b", "", "", false)
	b.AdaptiveScaling = true
	l := newTestLayout(t, NewStack("root", "", OrientationHorizontal, b, NewBlock("other", "")))
	l.layoutFrames()

	run(l, 30, at(b))
	if w := b.Bounds().Width; w <= 300 {
		t.Errorf("width = %d, want above its share of 300", w)
	}
}

func TestResizeLaysOutAgain(t *testing.T) {
	root := NewBlock("root", "")
	l := newTestLayout(t, root)
	run(l, 1, nil)

	l.Resize(300, 200)
	run(l, 1, nil)
	if diff := cmp.Diff(Rect{0, 0, 300, 200}, root.Bounds()); diff != "" {
		t.Errorf("bounds (-want +got):\n%s", diff)
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewStack("", "", OrientationVertical).AddChild(nil) }},
		{"second parent", func() {
			c := NewBlock("", "")
			NewStack("", "", OrientationVertical, c)
			NewStack("", "", OrientationVertical, c)
		}},
		{"cycle", func() {
			inner := NewStack("", "", OrientationVertical)
			outer := NewStack("", "", OrientationVertical, inner)
			inner.AddChild(outer)
		}},
		{"attached parent", func() {
			root := NewStack("", "", OrientationVertical)
			l, _ := NewLayout(10, 10, DefaultConfig())
			_ = l.AttachRoot(root)
			root.AddChild(NewBlank("", ""))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

// --- Replacement ---

func TestReplaceElementDefersDestruction(t *testing.T) {
	old := NewBlock("out", "old")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, old, NewBlock("b", "")))
	run(l, 1, nil)

	repl := NewBlock("out", "new")
	if err := l.ReplaceElement("out", repl, false); err != nil {
		t.Fatal(err)
	}
	if e, _ := l.ElementByID("out"); e != repl {
		t.Error("id should resolve to the replacement at once")
	}
	if old.IsDisposed() {
		t.Fatal("replaced element destroyed before the next update")
	}
	if diff := cmp.Diff(old.outer, repl.outer); diff != "" {
		t.Errorf("replacement placement (-want +got):\n%s", diff)
	}

	run(l, 1, nil)
	if !old.IsDisposed() {
		t.Error("replaced element should be destroyed by the next update")
	}
	if l.Root().Children()[0] != repl {
		t.Error("replacement not at the old position")
	}
}

func TestReplaceElementFromListener(t *testing.T) {
	b := NewBoxButton("b", "", "", false)
	out := NewTextBlock("out", "", "")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, out, b))

	var replaced *Element
	if _, err := l.RegisterButtonListener("b", Strong[ButtonListener](ButtonListenerFuncs{
		OnHit: func(l *Layout, id string) {
			replaced = NewTextBlock("out", "", "hit")
			if err := l.ReplaceElement("out", replaced, false); err != nil {
				t.Error(err)
			}
		},
	})); err != nil {
		t.Fatal(err)
	}

	l.HitButton("b")
	run(l, 1, nil)
	if e, _ := l.ElementByID("out"); e != replaced || e.Content() != "hit" {
		t.Fatal("listener replacement not applied")
	}
	if out.IsDisposed() {
		t.Error("old element destroyed within the tick that replaced it")
	}
	run(l, 1, nil)
	if !out.IsDisposed() {
		t.Error("old element should be destroyed by the following update")
	}
}

func TestReplaceElementWithFade(t *testing.T) {
	old := NewBlock("out", "old")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, old))
	run(l, 1, nil)

	if err := l.ReplaceElement("out", NewBlock("out", "new"), true); err != nil {
		t.Fatal(err)
	}
	run(l, 6, nil)
	r := &recordingRenderer{}
	l.Draw(r)
	if diff := cmp.Diff([]string{"new", "old"}, r.styles()); diff != "" {
		t.Errorf("both subtrees should draw while fading (-want +got):\n%s", diff)
	}
	if old.IsDisposed() {
		t.Fatal("fading element destroyed early")
	}

	run(l, 30, nil)
	if !old.IsDisposed() {
		t.Error("faded element should be destroyed")
	}
	r.reset()
	l.Draw(r)
	if diff := cmp.Diff([]string{"new"}, r.styles()); diff != "" {
		t.Errorf("draws after fade (-want +got):\n%s", diff)
	}
}

func TestReplaceElementErrors(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, NewBlock("a", ""), NewBlock("b", "")))

	if err := l.ReplaceElement("missing", NewBlank("", ""), false); !errors.Is(err, ErrUnknownID) {
		t.Errorf("unknown id: err = %v", err)
	}
	if err := l.ReplaceElement("a", NewBlock("b", ""), false); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("duplicate id: err = %v", err)
	}
	if err := l.ReplaceElement("a", nil, false); !errors.Is(err, ErrInvalidElement) {
		t.Errorf("nil replacement: err = %v", err)
	}
	if e, _ := l.ElementByID("b"); e.Parent() != l.Root() {
		t.Error("failed replacement changed the registry")
	}
	// Reusing the id of the replaced subtree is fine.
	if err := l.ReplaceElement("a", NewBlock("a", ""), false); err != nil {
		t.Errorf("reusing the replaced id: %v", err)
	}
}

func TestDeferredReplaceConflictKeepsOldIDs(t *testing.T) {
	a := NewBlock("a", "")
	b := NewBlock("b", "")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, a, b))
	run(l, 1, nil)
	got := warnings(l)

	// Both replacements pass the up-front check while the traversal runs;
	// only the first can take "n" when they are applied.
	first, second := NewBlock("n", ""), NewBlock("n", "")
	l.updating = true
	if err := l.ReplaceElement("a", first, false); err != nil {
		t.Fatal(err)
	}
	if err := l.ReplaceElement("b", second, false); err != nil {
		t.Fatal(err)
	}
	l.updating = false
	l.applyPending()

	if e, _ := l.ElementByID("n"); e != first {
		t.Error("n should resolve to the first replacement")
	}
	if e, ok := l.ElementByID("b"); !ok || e != b {
		t.Error("b should stay registered after its replacement failed")
	}
	if l.Root().Children()[1] != b {
		t.Error("b should stay in the tree")
	}
	if diff := cmp.Diff([]string{"bug: replacement ids conflict"}, *got); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

func TestReplaceRoot(t *testing.T) {
	old := NewStack("root", "", OrientationVertical, NewBlock("a", ""))
	l := newTestLayout(t, old)
	run(l, 1, nil)

	repl := NewBlock("root", "")
	if err := l.ReplaceElement("root", repl, false); err != nil {
		t.Fatal(err)
	}
	if l.Root() != repl {
		t.Fatal("root not replaced")
	}
	if l.CheckForID("a") {
		t.Error("ids of the old root subtree should leave the registry")
	}
	run(l, 1, nil)
	if !old.IsDisposed() {
		t.Error("old root should be destroyed")
	}
	if diff := cmp.Diff(Rect{0, 0, 600, 400}, repl.Bounds()); diff != "" {
		t.Errorf("new root bounds (-want +got):\n%s", diff)
	}
}

func TestRemoveElementKeepsSpace(t *testing.T) {
	a := NewBlock("a", "")
	a.RelativeScale = 3
	b := NewBlock("b", "")
	l := newTestLayout(t, NewStack("root", "", OrientationHorizontal, a, b))
	run(l, 1, nil)

	if err := l.RemoveElement("a", false); err != nil {
		t.Fatal(err)
	}
	run(l, 1, nil)
	blank := l.Root().Children()[0]
	if blank.Kind != KindBlank || blank.RelativeScale != 3 {
		t.Errorf("replacement = %s with scale %v, want blank with scale 3", blank.Kind, blank.RelativeScale)
	}
	if b.Bounds().X != 450 {
		t.Errorf("b.X = %d, want 450", b.Bounds().X)
	}
	if l.CheckForID("a") {
		t.Error("removed id still registered")
	}
}

func TestDyingElementsDoNotNotify(t *testing.T) {
	s := NewSensor("sensor", "", "")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, s))
	l.layoutFrames()
	got := events(l)

	run(l, 30, at(s))
	if err := l.ReplaceElement("sensor", NewBlank("", ""), true); err != nil {
		t.Fatal(err)
	}
	n := len(*got)
	run(l, 5, at(s))
	if len(*got) != n {
		t.Errorf("dying sensor notified: %v", (*got)[n:])
	}
	if s.Penetration() <= 0 {
		t.Error("dying sensor should still decay, not reset")
	}
}

func TestReplaceDeselectsRemovedSelection(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, NewBoxButton("b", "", "", false)))
	run(l, 1, nil)
	l.SelectInteractiveElement("b")

	if err := l.ReplaceElement("b", NewBlank("", ""), false); err != nil {
		t.Fatal(err)
	}
	if l.SelectedInteractiveElement() != nil {
		t.Error("selection should be cleared with its subtree")
	}
}

// --- Tick behavior ---

func TestListenerPanicIsIsolated(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical,
		NewBoxButton("a", "", "", false),
		NewBoxButton("b", "", "", false),
	))
	got := warnings(l)

	var hits []string
	for _, id := range []string{"a", "b"} {
		if _, err := l.RegisterButtonListener(id, Strong[ButtonListener](ButtonListenerFuncs{
			OnHit: func(_ *Layout, id string) {
				if id == "a" {
					panic("boom")
				}
				hits = append(hits, id)
			},
		})); err != nil {
			t.Fatal(err)
		}
	}

	l.HitButton("a")
	l.HitButton("b")
	run(l, 1, nil)

	if diff := cmp.Diff([]string{"b"}, hits); diff != "" {
		t.Errorf("hits (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"runtime: listener panicked: boom"}, *got); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

func TestNotificationsDrainInEnqueueOrderAfterTraversal(t *testing.T) {
	a := NewBoxButton("a", "", "", false)
	b := NewBoxButton("b", "", "", false)
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, a, b))
	got := events(l)

	var seen []string
	for _, id := range []string{"a", "b"} {
		if _, err := l.RegisterButtonListener(id, Strong[ButtonListener](ButtonListenerFuncs{
			OnHit: func(_ *Layout, id string) { seen = append(seen, id) },
		})); err != nil {
			t.Fatal(err)
		}
	}
	l.HitButton("a")
	l.ButtonDown("b", true)
	l.HitButton("b")
	run(l, 1, nil)

	want := []string{"BUTTON_HIT a", "BUTTON_DOWN a", "BUTTON_DOWN b", "BUTTON_HIT b"}
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b"}, seen); diff != "" {
		t.Errorf("listener order (-want +got):\n%s", diff)
	}
	if l.queue.len() != 0 {
		t.Error("queue not empty after update")
	}
}

func TestHiddenLayoutIgnoresInput(t *testing.T) {
	s := NewSensor("sensor", "", "")
	l := newTestLayout(t, s)
	l.layoutFrames()
	l.SetVisibility(false, true)

	run(l, 30, at(s))
	if s.Penetration() != 0 {
		t.Errorf("Penetration = %f, want 0 while hidden", s.Penetration())
	}
	r := &recordingRenderer{}
	l.Draw(r)
	if len(r.draws) != 0 {
		t.Errorf("hidden layout drew %d times", len(r.draws))
	}
}

func TestDeactivatedElementIgnoresInput(t *testing.T) {
	b := NewBoxButton("b", "", "", false)
	l := newTestLayout(t, b)
	l.layoutFrames()

	l.SetElementActivity("b", false, true)
	if l.IsElementActive("b") {
		t.Fatal("element still active")
	}
	run(l, 30, at(b))
	if b.Threshold() != 0 {
		t.Errorf("Threshold = %f, want 0 while inactive", b.Threshold())
	}

	l.SetElementActivity("b", true, false)
	run(l, 30, at(b))
	if b.Threshold() == 0 {
		t.Error("reactivated element should respond")
	}
}

func TestDimmingFollowsPenetration(t *testing.T) {
	b := NewBoxButton("b", "", "", false)
	b.Dimming = true
	l := newTestLayout(t, b)
	l.layoutFrames()

	run(l, 40, nil)
	if b.dim.Value() != 1 {
		t.Errorf("dim = %f, want 1 without gaze", b.dim.Value())
	}
	run(l, 40, at(b))
	if b.dim.Value() != 0 {
		t.Errorf("dim = %f, want 0 while gazed at", b.dim.Value())
	}
}

func TestResetElementsSendsNoNotifications(t *testing.T) {
	sw := NewBoxButton("sw", "", "", true)
	s := NewSensor("s", "", "")
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, sw, s))
	l.HitButton("sw")
	l.PenetrateSensor("s", 0.5)
	run(l, 1, nil)
	got := events(l)

	l.ResetElements()
	run(l, 1, nil)
	if sw.IsDown() || s.Penetration() != 0 {
		t.Error("elements not reset")
	}
	if len(*got) != 0 {
		t.Errorf("reset notified: %v", *got)
	}
}

func TestUnknownIDWarns(t *testing.T) {
	l := newTestLayout(t, NewBlock("a", ""))
	got := warnings(l)

	l.HighlightInteractiveElement("missing", true)
	l.HighlightInteractiveElement("a", true)
	if diff := cmp.Diff([]string{
		"runtime: cannot find element",
		"runtime: element is not interactive",
	}, *got); diff != "" {
		t.Errorf("warnings (-want +got):\n%s", diff)
	}
}

// --- Selection ---

func TestSelectNextInteractiveElementWraps(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical,
		NewBoxButton("a", "", "", false),
		NewBlock("block", ""),
		NewSensor("s", "", ""),
		NewBoxButton("c", "", "", false),
	))
	run(l, 1, nil)

	var order []string
	for range 4 {
		if !l.SelectNextInteractiveElement() {
			t.Fatal("nothing selectable")
		}
		order = append(order, l.SelectedInteractiveElement().ID)
	}
	if diff := cmp.Diff([]string{"a", "s", "c", "a"}, order); diff != "" {
		t.Errorf("selection order (-want +got):\n%s", diff)
	}
}

func TestSelectNextSkipsInactive(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical,
		NewBoxButton("a", "", "", false),
		NewBoxButton("b", "", "", false),
	))
	run(l, 1, nil)
	l.SetElementActivity("a", false, true)

	l.SelectNextInteractiveElement()
	l.SelectNextInteractiveElement()
	if got := l.SelectedInteractiveElement(); got == nil || got.ID != "b" {
		t.Errorf("selected = %v, want b only", got)
	}

	l.SetElementActivity("b", false, true)
	if l.SelectNextInteractiveElement() {
		t.Error("selection succeeded without eligible elements")
	}
}

func TestInteractWithSelected(t *testing.T) {
	l := newTestLayout(t, NewStack("root", "", OrientationVertical, NewBoxButton("b", "", "", false)))
	got := events(l)

	l.InteractWithSelectedInteractiveElement()
	if !l.SelectInteractiveElement("b") {
		t.Fatal("SelectInteractiveElement failed")
	}
	l.InteractWithSelectedInteractiveElement()
	run(l, 1, nil)
	if count(*got, "BUTTON_HIT b") != 1 {
		t.Errorf("events = %v, want one hit", *got)
	}

	l.DeselectInteractiveElement()
	if l.SelectedInteractiveElement() != nil {
		t.Error("still selected")
	}
}
