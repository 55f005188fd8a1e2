// Package loop runs the fixed-timestep update/render cycle on a dedicated goroutine.
//
// Every iteration converts elapsed monotonic time into whole logic ticks,
// runs one update per pending tick (catch-up), then exactly one render. A
// throughput report is produced once per second.
package loop

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"chosenoffset.com/framekit/internal/logger"
)

// Callbacks is the user-supplied pair driven by the loop. Nil entries are no-ops.
type Callbacks struct {
	// Update runs once per logic tick.
	Update func() error
	// Render runs once per iteration, after all ticks of that iteration.
	// It is expected to end with the presentation call, which may block briefly.
	Render func() error
}

// Config controls the driver. The zero value runs at DefaultTickRate on the
// system clock without reporting.
type Config struct {
	TickRate float64
	Report   bool
	Clock    TimeSource

	// Reporter receives each window's Stats when Report is set.
	// Defaults to an info line on the logger.
	Reporter func(Stats)

	// OnExit is called from the worker once it leaves the loop, with the fault
	// if there was one. It must not block and must not call Stop.
	OnExit func(error)

	Logger *slog.Logger
}

// Driver owns the loop worker and its start/stop lifecycle.
type Driver struct {
	cfg   Config
	cb    Callbacks
	clock TimeSource
	log   *slog.Logger

	mu      sync.Mutex // serialises Start and Stop
	running atomic.Bool
	done    chan struct{}

	errMu sync.Mutex
	err   error

	totalFrames  atomic.Uint64
	totalUpdates atomic.Uint64
}

// NewDriver creates a stopped driver.
func NewDriver(cfg Config, cb Callbacks) *Driver {
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	clock := cfg.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	lg := cfg.Logger
	if lg == nil {
		lg = logger.L()
	}
	d := &Driver{
		cfg:   cfg,
		cb:    cb,
		clock: clock,
		log:   lg.With("component", "loop"),
	}
	if d.cfg.Reporter == nil {
		d.cfg.Reporter = func(s Stats) { d.log.Info(s.String()) }
	}
	return d
}

// Start spawns the worker. Calling Start while the loop is running is a no-op
// and does not reset any counters.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return
	}
	// a worker that ended on its own may still be in its exit path
	if d.done != nil {
		<-d.done
	}

	d.errMu.Lock()
	d.err = nil
	d.errMu.Unlock()

	done := make(chan struct{})
	d.done = done
	d.running.Store(true)
	clock := NewFrameClock(d.clock.Now(), d.cfg.TickRate)

	d.log.Debug("loop starting", "tick_rate", d.cfg.TickRate, "report", d.cfg.Report)
	go d.run(clock, done)
}

// Stop asks the worker to leave the loop at the next iteration boundary and
// waits until it has exited. It returns the fault that ended the most recent
// run, if any. Stop on a stopped driver only reports that fault again.
//
// Stop must not be called from inside a callback; return ErrTerminated or call
// RequestStop there instead.
func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.running.Store(false)
	if d.done != nil {
		<-d.done
	}
	return d.Err()
}

// RequestStop asks the worker to exit without waiting for it.
func (d *Driver) RequestStop() {
	d.running.Store(false)
}

// Running reports whether the worker is inside the loop.
func (d *Driver) Running() bool {
	return d.running.Load()
}

// Err returns the fault that ended the most recent run, or nil.
func (d *Driver) Err() error {
	d.errMu.Lock()
	defer d.errMu.Unlock()
	return d.err
}

// Totals returns frames and updates executed since the driver was created.
func (d *Driver) Totals() (frames, updates uint64) {
	return d.totalFrames.Load(), d.totalUpdates.Load()
}

func (d *Driver) run(c *FrameClock, done chan struct{}) {
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = &WorkerFault{Value: r, Stack: debug.Stack()}
		}
		d.running.Store(false)

		d.errMu.Lock()
		d.err = err
		d.errMu.Unlock()

		if err != nil {
			d.log.Error("loop worker terminated abnormally", "err", err)
		} else {
			d.log.Debug("loop stopped")
		}
		if d.cfg.OnExit != nil {
			d.cfg.OnExit(err)
		}
		close(done)
	}()

	for d.running.Load() {
		if err = d.iterate(c); err != nil {
			if errors.Is(err, ErrTerminated) {
				err = nil
			} else {
				err = &WorkerFault{Value: err}
			}
			return
		}
	}
}

// iterate runs one loop body: pending ticks, one render, then the report check.
func (d *Driver) iterate(c *FrameClock) error {
	c.Advance(d.clock.Now())

	for c.ConsumeTick() {
		if d.cb.Update != nil {
			if err := d.cb.Update(); err != nil {
				return err
			}
		}
		d.totalUpdates.Add(1)
	}

	if d.cb.Render != nil {
		if err := d.cb.Render(); err != nil {
			return err
		}
	}
	c.FramePresented()
	d.totalFrames.Add(1)

	// counters reset every window even when nobody listens
	if s, ok := c.Report(d.clock.Now()); ok && d.cfg.Report {
		d.cfg.Reporter(s)
	}
	return nil
}
