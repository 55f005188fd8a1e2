package hud

import (
	"image"
	"image/color"
	"testing"

	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/loop"
)

func TestLines(t *testing.T) {
	store := input.NewStore()
	h := New(&Config{ShowThroughput: true, ShowInput: true, ShowTotals: true, Opacity: 1}, store)

	lines := h.Lines()
	if lines[0] != "FPS: -; updates: -" {
		t.Errorf("before any report: %q", lines[0])
	}

	h.Report(loop.Stats{Frames: 58, Updates: 60})
	h.SetTotals(1000, 1200)
	store.RecordMouseMove(12, 34)
	store.RecordButton(input.ButtonLeft, true, 2)
	store.RecordKey(input.KeyW, true)
	store.RecordKey(input.KeyEscape, true)

	want := []string{
		"FPS: 58; updates: 60",
		"frames: 1000; ticks: 1200",
		"mouse: 12,34 [left x2]",
		"keys: W Esc",
	}
	lines = h.Lines()
	if len(lines) != len(want) {
		t.Fatalf("Lines() = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDrawPositions(t *testing.T) {
	for _, pos := range []string{"top-left", "top-right", "bottom-left", "bottom-right"} {
		h := New(&Config{ShowThroughput: true, Position: pos, Opacity: 1}, nil)
		h.Report(loop.Stats{Frames: 60, Updates: 60})

		dst := image.NewRGBA(image.Rect(0, 0, 320, 200))
		h.Draw(dst)

		var probe image.Point
		switch pos {
		case "top-left":
			probe = image.Pt(4, 4)
		case "top-right":
			probe = image.Pt(315, 4)
		case "bottom-left":
			probe = image.Pt(4, 195)
		case "bottom-right":
			probe = image.Pt(315, 195)
		}
		if got := dst.RGBAAt(probe.X, probe.Y); got == (color.RGBA{}) {
			t.Errorf("%s: panel corner %v not drawn", pos, probe)
		}
	}
}

func TestDrawNothingToShow(t *testing.T) {
	h := New(&Config{}, nil)
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	h.Draw(dst)
	for _, b := range dst.Pix {
		if b != 0 {
			t.Fatal("empty HUD drew pixels")
		}
	}
}
