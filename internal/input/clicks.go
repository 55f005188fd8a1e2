package input

import "time"

// ClickCounter turns a stream of button presses into click counts: presses
// of the same button closer together than the window extend the run (double
// click, triple click), anything else starts over at 1.
// It belongs to a single dispatch goroutine.
type ClickCounter struct {
	window time.Duration
	button MouseButton
	last   time.Time
	count  int
}

// NewClickCounter creates a counter with the given multi-click window.
func NewClickCounter(window time.Duration) *ClickCounter {
	return &ClickCounter{window: window, button: ButtonNone}
}

// Press records a press at now and returns its click count.
func (c *ClickCounter) Press(b MouseButton, now time.Time) int {
	if b == c.button && c.count > 0 && now.Sub(c.last) <= c.window {
		c.count++
	} else {
		c.count = 1
	}
	c.button = b
	c.last = now
	return c.count
}

// Count returns the count of the last press.
func (c *ClickCounter) Count() int {
	return c.count
}
