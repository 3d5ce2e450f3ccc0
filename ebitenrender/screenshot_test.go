package ebitenrender

import (
	"testing"

	"github.com/phanxgames/gaze"
)

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"keyboard", "keyboard"},
		{"after-press", "after-press"},
		{"frame.01", "frame.01"},
		{"has spaces", "has_spaces"},
		{"path/to/thing", "path_to_thing"},
		{"special!@#", "special___"},
		{"", "unlabeled"},
		{"   ", "unlabeled"},
	}
	for _, tt := range tests {
		if got := sanitizeLabel(tt.in); got != tt.want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	pixels := []byte{
		128, 64, 0, 128, // half transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // transparent
	}
	img := unpremultiply(pixels, 3, 1)
	want := []byte{
		255, 127, 0, 128,
		10, 20, 30, 255,
		0, 0, 0, 0,
	}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestScreenshotQueue(t *testing.T) {
	layout, err := gaze.NewLayout(64, 64, gaze.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	g := NewGame(layout, RunConfig{})
	if g.screenshotDir != "screenshots" {
		t.Errorf("screenshotDir = %q, want %q", g.screenshotDir, "screenshots")
	}
	g.Screenshot("a")
	g.Screenshot("b")
	if len(g.screenshots) != 2 || g.screenshots[0] != "a" || g.screenshots[1] != "b" {
		t.Errorf("queue = %v, want [a b]", g.screenshots)
	}
}
