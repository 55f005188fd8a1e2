// Package ebiten runs framekit inside a desktop window using Ebitengine.
//
// Ebitengine owns the main goroutine. Its Update callback is used as the
// input dispatch goroutine and its Draw callback copies the swap chain's
// front buffer to the screen; game logic never runs here.
package ebiten

import (
	"errors"
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
)

// Options configures the window.
type Options struct {
	Title     string
	Icon      string
	Resizable bool
	VSync     bool

	// Scale multiplies the swap chain size to get the initial window size.
	Scale       int
	DoubleClick time.Duration
	Loader      render.ResourceLoader
	Logger      *slog.Logger
}

// Host is a render.Host backed by an Ebitengine window.
type Host struct {
	opts   Options
	store  *input.Store
	chain  *render.SwapChain
	log    *slog.Logger
	clicks *input.ClickCounter

	closing atomic.Bool
	focused bool
	keys    []ebiten.Key
	cx, cy  int
}

var _ render.Host = (*Host)(nil)

// New creates a host that writes input into store and shows chain.
func New(opts Options, store *input.Store, chain *render.SwapChain) *Host {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Loader == nil {
		opts.Loader = NewResourceLoader()
	}
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}
	return &Host{
		opts:    opts,
		store:   store,
		chain:   chain,
		log:     log.With("host", "ebiten"),
		clicks:  input.NewClickCounter(opts.DoubleClick),
		focused: true,
		cx:      -1,
		cy:      -1,
	}
}

// Name implements render.Host.
func (h *Host) Name() string { return "ebiten" }

// Run opens the window and blocks until it is closed. It must be called
// from the main goroutine.
func (h *Host) Run() error {
	w, hgt := h.chain.Size()
	ebiten.SetWindowSize(w*h.opts.Scale, hgt*h.opts.Scale)
	ebiten.SetWindowTitle(h.opts.Title)
	if h.opts.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetVsyncEnabled(h.opts.VSync)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetWindowClosingHandled(true)

	if h.opts.Icon != "" {
		if icon := render.Load(h.opts.Loader, h.opts.Icon, h.log); icon != nil {
			ebiten.SetWindowIcon([]image.Image{icon})
		}
	}

	h.log.Debug("window opening", "width", w, "height", hgt)
	err := ebiten.RunGame(&gameAdapter{h: h})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

// Close makes Run return after the current tick.
func (h *Host) Close() {
	h.closing.Store(true)
}

func (h *Host) update() error {
	if ebiten.IsWindowBeingClosed() {
		h.closing.Store(true)
	}
	if h.closing.Load() {
		return ebiten.Termination
	}

	focused := ebiten.IsFocused()
	if !focused && h.focused {
		// key releases are not delivered to an unfocused window
		h.store.ReleaseAll()
	}
	h.focused = focused

	h.store.SetScreenOrigin(ebiten.WindowPosition())
	h.pollKeys()
	h.pollMouse()
	return nil
}

func (h *Host) pollKeys() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := keyTable[k]; ok {
			h.store.RecordKey(code, true)
		}
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if code, ok := keyTable[k]; ok {
			h.store.RecordKey(code, false)
		}
	}
}

func (h *Host) pollMouse() {
	x, y := ebiten.CursorPosition()
	if x != h.cx || y != h.cy {
		h.cx, h.cy = x, y
		h.store.RecordMouseMove(x, y)
	}

	for _, b := range buttonTable {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			n := h.clicks.Press(b.in, time.Now())
			h.store.RecordButton(b.in, true, n)
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			h.store.RecordButton(b.in, false, 0)
			h.store.RecordClick(b.in, h.clicks.Count())
		}
	}
}

func (h *Host) draw(screen *ebiten.Image) {
	if h.chain.View(func(front *image.RGBA) {
		screen.WritePixels(front.Pix)
	}) {
		h.chain.Displayed()
	}
}

// gameAdapter keeps the ebiten.Game methods off the Host API.
type gameAdapter struct {
	h *Host
}

// Update implements ebiten.Game.
func (a *gameAdapter) Update() error {
	return a.h.update()
}

// Draw implements ebiten.Game.
func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.h.draw(screen)
}

// Layout implements ebiten.Game. The logical screen is always the swap chain
// size; ebiten scales it to the window.
func (a *gameAdapter) Layout(_, _ int) (int, int) {
	return a.h.chain.Size()
}
