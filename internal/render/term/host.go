// Package term runs framekit in a terminal using tcell. Each cell shows two
// vertically stacked pixels with the upper half block glyph.
//
// Terminals report key presses but never releases, so a key stays pressed
// for a configurable hold time after its last press or auto-repeat.
package term

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
)

const halfBlock = '▀'

// Options configures the terminal host.
type Options struct {
	KeyHold     time.Duration
	DoubleClick time.Duration
	// Refresh is the interval between screen updates.
	Refresh time.Duration
	Logger  *slog.Logger

	// Screen replaces the real terminal, e.g. with a simulation screen.
	Screen tcell.Screen
}

// Host is a render.Host drawing into a tcell screen.
type Host struct {
	opts   Options
	store  *input.Store
	chain  *render.SwapChain
	log    *slog.Logger
	screen tcell.Screen
	clicks *input.ClickCounter

	mu     sync.Mutex
	timers map[input.Key]*time.Timer

	held     tcell.ButtonMask
	mx, my   int
	scaled   *image.RGBA
	ready    chan struct{}
	done     chan struct{}
	doneOnce sync.Once
}

var _ render.Host = (*Host)(nil)

// New creates a terminal host. The terminal is not touched until Run.
func New(opts Options, store *input.Store, chain *render.SwapChain) (*Host, error) {
	if opts.KeyHold <= 0 {
		opts.KeyHold = 150 * time.Millisecond
	}
	if opts.Refresh <= 0 {
		opts.Refresh = 33 * time.Millisecond
	}
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}
	screen := opts.Screen
	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("failed to open terminal: %w", err)
		}
		screen = s
	}
	return &Host{
		opts:   opts,
		store:  store,
		chain:  chain,
		log:    log.With("host", "terminal"),
		screen: screen,
		clicks: input.NewClickCounter(opts.DoubleClick),
		timers: make(map[input.Key]*time.Timer),
		mx:     -1,
		my:     -1,
		ready:  make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

// Name implements render.Host.
func (h *Host) Name() string { return "terminal" }

// Run takes over the terminal and dispatches events until Close or Ctrl-C.
func (h *Host) Run() error {
	select {
	case <-h.done:
		return nil
	default:
	}

	if err := h.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise terminal: %w", err)
	}
	defer h.screen.Fini()
	h.screen.EnableMouse()
	h.screen.HideCursor()
	h.screen.Clear()
	close(h.ready)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.presentLoop()
	}()
	defer wg.Wait()
	defer h.stopTimers()

	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			h.Close()
			return nil
		}
		select {
		case <-h.done:
			return nil
		default:
		}
		h.handle(ev)
	}
}

// Close makes Run return and restores the terminal.
func (h *Host) Close() {
	h.doneOnce.Do(func() {
		close(h.done)
		// wake PollEvent; fails harmlessly if the queue is full
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
}

func (h *Host) handle(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		h.handleKey(ev)
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventFocus:
		if !ev.Focused {
			h.store.ReleaseAll()
		}
	}
}

func (h *Host) handleKey(ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC {
		h.log.Debug("interrupt from keyboard")
		h.Close()
		return
	}
	code := translateKey(ev)
	if code == input.KeyUnknown {
		return
	}
	h.store.RecordKey(code, true)

	h.mu.Lock()
	defer h.mu.Unlock()
	if t, ok := h.timers[code]; ok {
		t.Reset(h.opts.KeyHold)
		return
	}
	h.timers[code] = time.AfterFunc(h.opts.KeyHold, func() {
		h.mu.Lock()
		delete(h.timers, code)
		h.mu.Unlock()
		h.store.RecordKey(code, false)
	})
}

func (h *Host) stopTimers() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for code, t := range h.timers {
		t.Stop()
		delete(h.timers, code)
	}
}

func translateKey(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.KeyFromRune(ev.Rune())
	case tcell.KeyEscape:
		return input.KeyEscape
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyTab:
		return input.KeyTab
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.KeyBackspace
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	default:
		return input.KeyUnknown
	}
}

var mouseButtons = [...]struct {
	mask tcell.ButtonMask
	b    input.MouseButton
}{
	{tcell.Button1, input.ButtonLeft},
	{tcell.Button3, input.ButtonMiddle},
	{tcell.Button2, input.ButtonRight},
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x, y := h.cellToPixel(cx, cy)
	if x != h.mx || y != h.my {
		h.mx, h.my = x, y
		h.store.RecordMouseMove(x, y)
	}

	now := ev.Buttons()
	for _, mb := range mouseButtons {
		was := h.held&mb.mask != 0
		is := now&mb.mask != 0
		switch {
		case is && !was:
			n := h.clicks.Press(mb.b, ev.When())
			h.store.RecordButton(mb.b, true, n)
		case was && !is:
			h.store.RecordButton(mb.b, false, 0)
			h.store.RecordClick(mb.b, h.clicks.Count())
		}
	}
	h.held = now
}

// cellToPixel maps a terminal cell to the swap chain pixel under its top half.
func (h *Host) cellToPixel(cx, cy int) (int, int) {
	cols, rows := h.screen.Size()
	if cols < 1 || rows < 1 {
		return 0, 0
	}
	w, hgt := h.chain.Size()
	return cx * w / cols, cy * 2 * hgt / (rows * 2)
}

func (h *Host) presentLoop() {
	ticker := time.NewTicker(h.opts.Refresh)
	defer ticker.Stop()
	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			if h.present() {
				h.chain.Displayed()
			}
		}
	}
}

// present downsamples the front buffer to the terminal grid and shows it.
func (h *Host) present() bool {
	cols, rows := h.screen.Size()
	if cols < 1 || rows < 1 {
		return false
	}
	if h.scaled == nil || h.scaled.Bounds().Dx() != cols || h.scaled.Bounds().Dy() != rows*2 {
		h.scaled = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	dst := h.scaled
	if !h.chain.View(func(front *image.RGBA) {
		xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), front, front.Bounds(), xdraw.Src, nil)
	}) {
		return false
	}

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			top := dst.RGBAAt(c, r*2)
			bottom := dst.RGBAAt(c, r*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			h.screen.SetContent(c, r, halfBlock, nil, style)
		}
	}
	h.screen.Show()
	return true
}
