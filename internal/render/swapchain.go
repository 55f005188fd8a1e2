package render

import (
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"time"
)

// ErrClosed is returned by a SwapChain after Close.
var ErrClosed = errors.New("swap chain closed")

// MinBuffers is the smallest usable number of presentation buffers: one on
// screen and one being drawn.
const MinBuffers = 2

// SwapChainOptions configures a SwapChain.
type SwapChainOptions struct {
	Width, Height int
	Buffers       int

	// VSync makes Present wait until the host reports that the new front
	// buffer was displayed, for at most PresentTimeout.
	VSync          bool
	PresentTimeout time.Duration
}

// SwapChain rotates a fixed set of RGBA buffers between the loop worker,
// which draws into back buffers, and the host, which reads the front buffer.
type SwapChain struct {
	width, height int
	buffers       int
	vsync         bool
	timeout       time.Duration

	free chan *image.RGBA

	mu    sync.Mutex
	front *image.RGBA

	shown     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	presented atomic.Uint64
}

// NewSwapChain allocates the buffers. A buffer count below MinBuffers is
// raised to MinBuffers; a non-positive size becomes 1x1.
func NewSwapChain(opts SwapChainOptions) *SwapChain {
	n := opts.Buffers
	if n < MinBuffers {
		n = MinBuffers
	}
	w, h := opts.Width, opts.Height
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	timeout := opts.PresentTimeout
	if timeout <= 0 {
		timeout = 50 * time.Millisecond
	}

	c := &SwapChain{
		width:   w,
		height:  h,
		buffers: n,
		vsync:   opts.VSync,
		timeout: timeout,
		free:    make(chan *image.RGBA, n),
		shown:   make(chan struct{}, 1),
		closed:  make(chan struct{}),
	}
	for i := 0; i < n; i++ {
		c.free <- image.NewRGBA(image.Rect(0, 0, w, h))
	}
	return c
}

// Size returns the buffer dimensions.
func (c *SwapChain) Size() (width, height int) {
	return c.width, c.height
}

// Buffers returns the number of buffers in rotation.
func (c *SwapChain) Buffers() int {
	return c.buffers
}

// Acquire returns a back buffer, waiting if every buffer is in use. The
// buffer keeps the contents of the last frame drawn into it.
func (c *SwapChain) Acquire() (*image.RGBA, error) {
	select {
	case <-c.closed:
		return nil, ErrClosed
	default:
	}
	select {
	case buf := <-c.free:
		return buf, nil
	case <-c.closed:
		return nil, ErrClosed
	}
}

// Present makes buf the front buffer and recycles the previous one. With
// VSync it then waits for Displayed, the timeout or Close, whichever comes
// first.
func (c *SwapChain) Present(buf *image.RGBA) error {
	if buf == nil {
		return errors.New("present: nil buffer")
	}
	select {
	case <-c.closed:
		return ErrClosed
	default:
	}

	// drop a stale display signal from the previous frame
	select {
	case <-c.shown:
	default:
	}

	c.mu.Lock()
	old := c.front
	c.front = buf
	c.mu.Unlock()
	c.presented.Add(1)

	if old != nil && old != buf {
		c.free <- old
	}

	if !c.vsync {
		return nil
	}
	timer := time.NewTimer(c.timeout)
	defer timer.Stop()
	select {
	case <-c.shown:
	case <-timer.C:
	case <-c.closed:
	}
	return nil
}

// Draw acquires a back buffer, runs fn on it and presents it.
func (c *SwapChain) Draw(fn func(dst *image.RGBA)) error {
	buf, err := c.Acquire()
	if err != nil {
		return err
	}
	fn(buf)
	return c.Present(buf)
}

// View runs fn with the front buffer held, so it cannot be recycled while
// fn reads it. It returns false when nothing was presented yet.
func (c *SwapChain) View(fn func(front *image.RGBA)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.front == nil {
		return false
	}
	fn(c.front)
	return true
}

// Displayed is called by the host after the front buffer reached the screen.
// It never blocks.
func (c *SwapChain) Displayed() {
	select {
	case c.shown <- struct{}{}:
	default:
	}
}

// Presented returns the number of frames presented so far.
func (c *SwapChain) Presented() uint64 {
	return c.presented.Load()
}

// Close releases any goroutine blocked in Acquire or Present.
func (c *SwapChain) Close() {
	c.closeOnce.Do(func() { close(c.closed) })
}
