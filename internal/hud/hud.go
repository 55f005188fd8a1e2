// Package hud draws a small overlay with loop throughput and input state.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/loop"
	"chosenoffset.com/framekit/internal/render"
)

// Config defines what to display in the HUD
type Config struct {
	ShowThroughput bool    `yaml:"show_throughput"`
	ShowInput      bool    `yaml:"show_input"`
	ShowTotals     bool    `yaml:"show_totals"`
	Position       string  `yaml:"position"` // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity        float64 `yaml:"opacity"`  // background opacity (0-1)
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *Config {
	return &Config{
		ShowThroughput: true,
		ShowInput:      true,
		Position:       "top-left",
		Opacity:        0.7,
	}
}

const (
	padding    = 6
	lineHeight = 14
)

// HUD manages the heads-up display
type HUD struct {
	config *Config
	input  *input.Store

	mu     sync.Mutex
	stats  loop.Stats
	seen   bool
	totals loop.Stats
}

// New creates a HUD. store may be nil when no input line is wanted.
func New(config *Config, store *input.Store) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	return &HUD{config: config, input: store}
}

// Report records the latest throughput window. It has the signature of a
// loop.Config Reporter.
func (h *HUD) Report(s loop.Stats) {
	h.mu.Lock()
	h.stats = s
	h.seen = true
	h.mu.Unlock()
}

// SetTotals records lifetime counters.
func (h *HUD) SetTotals(frames, updates uint64) {
	h.mu.Lock()
	h.totals = loop.Stats{Frames: int(frames), Updates: int(updates)}
	h.mu.Unlock()
}

// Lines returns the text rows the HUD would draw.
func (h *HUD) Lines() []string {
	h.mu.Lock()
	stats, seen, totals := h.stats, h.seen, h.totals
	h.mu.Unlock()

	var lines []string
	if h.config.ShowThroughput {
		if seen {
			lines = append(lines, stats.String())
		} else {
			lines = append(lines, "FPS: -; updates: -")
		}
	}
	if h.config.ShowTotals {
		lines = append(lines, fmt.Sprintf("frames: %d; ticks: %d", totals.Frames, totals.Updates))
	}
	if h.config.ShowInput && h.input != nil {
		x, y := h.input.CurrentMousePosition()
		line := fmt.Sprintf("mouse: %d,%d", x, y)
		if b := h.input.CurrentButton(); b != input.ButtonNone {
			line += fmt.Sprintf(" [%s x%d]", b, h.input.ClickCount())
		}
		lines = append(lines, line)
		if keys := h.input.PressedKeys(); len(keys) > 0 {
			lines = append(lines, "keys: "+keyNames(keys))
		}
	}
	return lines
}

// Draw renders the overlay panel onto dst.
func (h *HUD) Draw(dst xdraw.Image) {
	lines := h.Lines()
	if len(lines) == 0 {
		return
	}

	width := 0
	for _, l := range lines {
		if w, _ := render.MeasureText(l); w > width {
			width = w
		}
	}
	panel := image.Rect(0, 0, width+2*padding, len(lines)*lineHeight+2*padding)
	panel = panel.Add(h.origin(dst.Bounds(), panel.Dx(), panel.Dy()))

	alpha := uint8(h.config.Opacity * 255)
	render.FillRect(dst, panel, color.RGBA{20, 20, 30, alpha})
	render.StrokeRect(dst, panel, color.RGBA{60, 60, 80, alpha})

	y := panel.Min.Y + padding
	for i, l := range lines {
		clr := color.RGBA{180, 180, 180, 255}
		if i == 0 && h.config.ShowThroughput {
			clr = color.RGBA{255, 255, 200, 255}
		}
		render.DrawText(dst, l, panel.Min.X+padding, y, clr)
		y += lineHeight
	}
}

// origin returns the top-left corner of the panel
func (h *HUD) origin(screen image.Rectangle, w, hgt int) image.Point {
	const margin = 4
	switch h.config.Position {
	case "top-right":
		return image.Pt(screen.Max.X-w-margin, screen.Min.Y+margin)
	case "bottom-left":
		return image.Pt(screen.Min.X+margin, screen.Max.Y-hgt-margin)
	case "bottom-right":
		return image.Pt(screen.Max.X-w-margin, screen.Max.Y-hgt-margin)
	default: // "top-left"
		return image.Pt(screen.Min.X+margin, screen.Min.Y+margin)
	}
}

func keyNames(keys []input.Key) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k.String())
	}
	return strings.Join(names, " ")
}
