// Package anim advances a frame index over a fixed-length sequence at a
// rate expressed in ticks per frame.
package anim

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSpeed is returned when speed is below one tick per frame.
	ErrInvalidSpeed = errors.New("animation speed must be at least 1")
	// ErrEmptySequence is returned for a nil or zero-length frame sequence.
	ErrEmptySequence = errors.New("animation needs at least one frame")
)

// Sequence provides the ordered frames an Animation steps through. New kinds
// of animation are new Sequence implementations (a sprite sheet strip, an
// atlas entry, a plain slice).
type Sequence[F any] interface {
	Len() int
	At(i int) F
}

// Frames adapts a plain slice to Sequence.
type Frames[F any] []F

// Len returns the number of frames.
func (f Frames[F]) Len() int { return len(f) }

// At returns frame i.
func (f Frames[F]) At(i int) F { return f[i] }

// Animation is a deterministic frame clock: given the same speed, length and
// number of Update calls it always lands on the same frame.
// It is owned by a single game object and is not safe for concurrent use.
type Animation[F any] struct {
	seq     Sequence[F]
	n       int
	speed   int
	ticks   int
	index   int
	playing bool
}

// New creates a playing animation positioned on frame 0. The sequence length
// is captured at construction.
func New[F any](seq Sequence[F], speed int) (*Animation[F], error) {
	if speed < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSpeed, speed)
	}
	if seq == nil || seq.Len() < 1 {
		return nil, ErrEmptySequence
	}
	return &Animation[F]{
		seq:     seq,
		n:       seq.Len(),
		speed:   speed,
		playing: true,
	}, nil
}

// Update counts one tick. Every speed-th tick the frame advances, wrapping at
// the end of the sequence, unless playback is paused.
func (a *Animation[F]) Update() {
	a.ticks++
	if a.ticks%a.speed == 0 {
		if a.playing {
			a.index++
		}
		a.index %= a.n
	}
}

// Current returns the frame at the current index.
func (a *Animation[F]) Current() F {
	return a.seq.At(a.index)
}

// Index returns the current frame index in [0, Len()).
func (a *Animation[F]) Index() int {
	return a.index
}

// Len returns the number of frames in the sequence.
func (a *Animation[F]) Len() int {
	return a.n
}

// Speed returns the number of ticks per frame advance.
func (a *Animation[F]) Speed() int {
	return a.speed
}

// SetPlaying pauses or resumes advancement. Neither the frame index nor the
// tick phase is reset.
func (a *Animation[F]) SetPlaying(playing bool) {
	a.playing = playing
}

// Playing reports whether the animation advances on Update.
func (a *Animation[F]) Playing() bool {
	return a.playing
}

// Reset rewinds to frame 0 and clears the tick phase.
func (a *Animation[F]) Reset() {
	a.ticks = 0
	a.index = 0
}
