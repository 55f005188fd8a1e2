package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chosenoffset.com/framekit/internal/config"
	"chosenoffset.com/framekit/internal/hud"
	"chosenoffset.com/framekit/internal/input"
	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
)

// fakeHost blocks in Run until Close, or until autoClose elapses.
type fakeHost struct {
	closed    chan struct{}
	once      sync.Once
	autoClose time.Duration
	runErr    error
}

func newFakeHost() *fakeHost {
	return &fakeHost{closed: make(chan struct{})}
}

func (h *fakeHost) Name() string { return "fake" }

func (h *fakeHost) Run() error {
	if h.runErr != nil {
		return h.runErr
	}
	if h.autoClose > 0 {
		select {
		case <-h.closed:
		case <-time.After(h.autoClose):
		}
		return nil
	}
	<-h.closed
	return nil
}

func (h *fakeHost) Close() {
	h.once.Do(func() { close(h.closed) })
}

type fakeGame struct {
	updates atomic.Int64
	frames  atomic.Int64
	update  func(a *App, n int64) error
}

func (g *fakeGame) Update(a *App) error {
	n := g.updates.Add(1)
	if g.update != nil {
		return g.update(a, n)
	}
	return nil
}

func (g *fakeGame) Draw(dst *image.RGBA) {
	g.frames.Add(1)
	render.Clear(dst, color.Black)
}

type harness struct {
	app    *App
	host   *fakeHost
	game   *fakeGame
	logs   *syncBuffer
	exited chan int
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newHarness(t *testing.T, game *fakeGame) *harness {
	t.Helper()
	cfg := config.Default()
	cfg.Loop.TickRate = 500
	cfg.Loop.Report = false

	h := &harness{
		host:   newFakeHost(),
		game:   game,
		logs:   &syncBuffer{},
		exited: make(chan int, 1),
	}
	store := input.NewStore()
	a, err := New(Options{
		Config: cfg,
		Store:  store,
		Chain:  render.NewSwapChain(render.SwapChainOptions{Width: 8, Height: 8}),
		Host:   h.host,
		HUD:    hud.New(nil, store),
		Logger: logger.New(logger.Config{Level: "debug", Format: "text", Output: h.logs}),
		Exit:   func(status int) { h.exited <- status },
	}, game)
	if err != nil {
		t.Fatal(err)
	}
	h.app = a
	return h
}

func (h *harness) run(t *testing.T) int {
	t.Helper()
	done := make(chan int, 1)
	go func() { done <- h.app.Run() }()
	select {
	case status := <-done:
		select {
		case exited := <-h.exited:
			if exited != status {
				t.Errorf("exit(%d) but Run returned %d", exited, status)
			}
		default:
			t.Error("exit function not called")
		}
		return status
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return -1
	}
}

func TestQuitFromUpdate(t *testing.T) {
	game := &fakeGame{update: func(a *App, n int64) error {
		if n == 5 {
			return a.Quit(0)
		}
		return nil
	}}
	h := newHarness(t, game)

	if status := h.run(t); status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if game.updates.Load() != 5 {
		t.Errorf("updates after quit = %d, want 5", game.updates.Load())
	}
	if h.app.Driver().Running() {
		t.Error("driver still running")
	}
	if !strings.Contains(h.logs.String(), "[TERMINATED SUCCESSFULLY]") {
		t.Errorf("missing success line in logs:\n%s", h.logs)
	}
}

func TestQuitOnKey(t *testing.T) {
	game := &fakeGame{update: func(a *App, n int64) error {
		return a.QuitOnKey(input.KeyEscape, 3)
	}}
	h := newHarness(t, game)

	go func() {
		time.Sleep(20 * time.Millisecond)
		h.app.Input().RecordKey(input.KeyEscape, true)
	}()

	if status := h.run(t); status != 3 {
		t.Errorf("status = %d, want 3", status)
	}
	if !strings.Contains(h.logs.String(), "[TERMINATED UNSUCCESSFULLY]") {
		t.Errorf("missing failure line in logs:\n%s", h.logs)
	}
}

func TestWindowCloseTerminatesCleanly(t *testing.T) {
	game := &fakeGame{}
	h := newHarness(t, game)
	h.host.autoClose = 50 * time.Millisecond

	if status := h.run(t); status != 0 {
		t.Errorf("status = %d, want 0", status)
	}
	if game.frames.Load() == 0 {
		t.Error("no frame drawn")
	}
	if h.app.Driver().Running() {
		t.Error("driver still running after window close")
	}
}

func TestPanicInUpdateExitsWithFailure(t *testing.T) {
	game := &fakeGame{update: func(a *App, n int64) error {
		if n == 2 {
			panic("boom")
		}
		return nil
	}}
	h := newHarness(t, game)

	if status := h.run(t); status != 1 {
		t.Errorf("status = %d, want 1", status)
	}
	if !strings.Contains(h.logs.String(), "boom") {
		t.Errorf("fault not logged:\n%s", h.logs)
	}
}

func TestUpdateErrorExitsWithFailure(t *testing.T) {
	game := &fakeGame{update: func(a *App, n int64) error {
		return errors.New("level file missing")
	}}
	h := newHarness(t, game)

	if status := h.run(t); status != 1 {
		t.Errorf("status = %d, want 1", status)
	}
}

func TestHostErrorExitsWithFailure(t *testing.T) {
	h := newHarness(t, &fakeGame{})
	h.host.runErr = errors.New("no display")

	if status := h.run(t); status != 1 {
		t.Errorf("status = %d, want 1", status)
	}
}

func TestTerminateOnlyOnce(t *testing.T) {
	h := newHarness(t, &fakeGame{})
	calls := 0
	h.app.exit = func(int) { calls++ }

	h.app.Terminate(0)
	h.app.Terminate(2)
	if calls != 1 {
		t.Errorf("exit called %d times, want 1", calls)
	}
	if h.app.ExitStatus() != 0 {
		t.Errorf("ExitStatus() = %d, want 0", h.app.ExitStatus())
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New(Options{}, &fakeGame{}); err == nil {
		t.Error("missing collaborators accepted")
	}
	opts := Options{
		Store: input.NewStore(),
		Chain: render.NewSwapChain(render.SwapChainOptions{Width: 1, Height: 1}),
		Host:  newFakeHost(),
	}
	if _, err := New(opts, nil); err == nil {
		t.Error("nil game accepted")
	}
}

func TestCheckArguments(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "no arguments",
			want: []string{"[LAUNCHED SUCCESSFULLY] Program launched with no arguments."},
		},
		{
			name:    "version",
			args:    []string{"framekit-version"},
			want:    []string{"with arguments", "framekit " + Version},
			notWant: []string{"[ARGUMENT ERROR]"},
		},
		{
			name: "unknown framekit argument",
			args: []string{"framekit-secret"},
			want: []string{"[ARGUMENT ERROR]", "framekit-secret"},
		},
		{
			name:    "foreign argument",
			args:    []string{"level2"},
			notWant: []string{"[ARGUMENT ERROR]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			CheckArguments(tt.args, logger.New(logger.Config{Format: "text", Output: &buf}))
			out := buf.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output has %q:\n%s", w, out)
				}
			}
		})
	}
}
