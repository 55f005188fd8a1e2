package loop

import (
	"fmt"
	"time"
)

// DefaultTickRate is the number of logic updates per second when none is configured.
const DefaultTickRate = 60.0

// ReportInterval is the length of one throughput reporting window.
const ReportInterval = time.Second

// Stats is the throughput measured over one reporting window.
type Stats struct {
	Frames  int
	Updates int
}

// String renders the report line printed once per window.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %d; updates: %d", s.Frames, s.Updates)
}

// FrameClock converts elapsed monotonic time into whole logic ticks.
// It is owned by the worker goroutine and is not safe for concurrent use.
type FrameClock struct {
	lastTime    time.Time
	accumulated float64 // pending ticks, never negative
	tickNanos   float64
	frames      int
	updates     int
	reportStart time.Time
}

// NewFrameClock starts a clock at now for the given tick rate (ticks per second).
// A non-positive rate falls back to DefaultTickRate.
func NewFrameClock(now time.Time, tickRate float64) *FrameClock {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return &FrameClock{
		lastTime:    now,
		tickNanos:   1e9 / tickRate,
		reportStart: now,
	}
}

// TickDuration returns the derived length of one tick in nanoseconds.
func (c *FrameClock) TickDuration() float64 {
	return c.tickNanos
}

// Pending returns the fractional number of ticks owed to the logic side.
func (c *FrameClock) Pending() float64 {
	return c.accumulated
}

// Advance adds the time elapsed since the previous reading to the accumulator.
func (c *FrameClock) Advance(now time.Time) {
	elapsed := now.Sub(c.lastTime)
	c.lastTime = now
	if elapsed <= 0 {
		return
	}
	c.accumulated += float64(elapsed) / c.tickNanos
}

// ConsumeTick takes one whole tick from the accumulator when available.
func (c *FrameClock) ConsumeTick() bool {
	if c.accumulated < 1 {
		return false
	}
	c.accumulated--
	c.updates++
	return true
}

// FramePresented counts one render pass.
func (c *FrameClock) FramePresented() {
	c.frames++
}

// Report closes the current window when at least ReportInterval has elapsed.
// The window advances by exactly one interval so lateness does not accumulate.
func (c *FrameClock) Report(now time.Time) (Stats, bool) {
	if now.Sub(c.reportStart) < ReportInterval {
		return Stats{}, false
	}
	c.reportStart = c.reportStart.Add(ReportInterval)
	s := Stats{Frames: c.frames, Updates: c.updates}
	c.frames = 0
	c.updates = 0
	return s, true
}
