package demo

import (
	"chosenoffset.com/framekit/internal/anim"
	"chosenoffset.com/framekit/internal/collision"
	"chosenoffset.com/framekit/internal/sprite"
)

// Player is the controllable walker.
type Player struct {
	Bound      *collision.Bound
	Walk       *anim.Animation[*sprite.Sprite]
	Speed      int // pixels per tick
	FacingLeft bool
}

// Coin is a collectable that spins in place.
type Coin struct {
	Bound     *collision.Bound
	Spin      *anim.Animation[*sprite.Sprite]
	Collected bool
}

// Message represents an on-screen message that fades over time.
type Message struct {
	Text      string
	TicksLeft int
	MaxTicks  int
}
