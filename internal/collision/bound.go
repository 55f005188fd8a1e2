package collision

// Bound is the collision box of a game object. Every setter refreshes the
// derived rectangle before returning, so a test right after a change always
// sees the new geometry.
type Bound struct {
	x, y int
	w, h int
	rect Rect
}

// NewBound creates a bound at (x, y) with the given size.
func NewBound(x, y, w, h int) *Bound {
	b := &Bound{x: x, y: y, w: w, h: h}
	b.sync()
	return b
}

func (b *Bound) sync() {
	b.rect = Rect{X: b.x, Y: b.y, W: b.w, H: b.h}
}

// SetX moves the left edge.
func (b *Bound) SetX(x int) { b.x = x; b.sync() }

// SetY moves the top edge.
func (b *Bound) SetY(y int) { b.y = y; b.sync() }

// SetWidth resizes horizontally.
func (b *Bound) SetWidth(w int) { b.w = w; b.sync() }

// SetHeight resizes vertically.
func (b *Bound) SetHeight(h int) { b.h = h; b.sync() }

// SetPosition moves the bound without resizing it.
func (b *Bound) SetPosition(x, y int) { b.x, b.y = x, y; b.sync() }

// Translate offsets the bound by (dx, dy).
func (b *Bound) Translate(dx, dy int) { b.x += dx; b.y += dy; b.sync() }

func (b *Bound) X() int      { return b.x }
func (b *Bound) Y() int      { return b.y }
func (b *Bound) Width() int  { return b.w }
func (b *Bound) Height() int { return b.h }

// Rect returns the current collision rectangle.
func (b *Bound) Rect() Rect { return b.rect }

// Colliding reports whether two bounds overlap. A nil bound collides with
// nothing.
func (b *Bound) Colliding(o *Bound) bool {
	if b == nil || o == nil {
		return false
	}
	return Intersects(b.rect, o.rect)
}
