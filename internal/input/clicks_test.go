package input

import (
	"testing"
	"time"
)

func TestClickCounter(t *testing.T) {
	c := NewClickCounter(400 * time.Millisecond)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	steps := []struct {
		b    MouseButton
		at   time.Duration
		want int
	}{
		{ButtonLeft, 0, 1},
		{ButtonLeft, 200 * time.Millisecond, 2},
		{ButtonLeft, 500 * time.Millisecond, 3},
		{ButtonLeft, 1500 * time.Millisecond, 1},
		{ButtonRight, 1600 * time.Millisecond, 1},
		{ButtonLeft, 1700 * time.Millisecond, 1},
	}
	for i, s := range steps {
		if got := c.Press(s.b, t0.Add(s.at)); got != s.want {
			t.Errorf("press %d (%v at %v) = %d, want %d", i, s.b, s.at, got, s.want)
		}
	}
	if c.Count() != 1 {
		t.Errorf("Count() = %d", c.Count())
	}
}
