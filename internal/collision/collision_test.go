package collision

import (
	"image"
	"testing"
)

func TestIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"overlap", R(0, 0, 10, 10), R(5, 5, 10, 10), true},
		{"contained", R(0, 0, 10, 10), R(2, 2, 2, 2), true},
		{"identical", R(3, 3, 4, 4), R(3, 3, 4, 4), true},
		{"touching right edge", R(0, 0, 10, 10), R(10, 0, 10, 10), false},
		{"touching bottom edge", R(0, 0, 10, 10), R(0, 10, 10, 10), false},
		{"touching corner", R(0, 0, 10, 10), R(10, 10, 5, 5), false},
		{"apart", R(0, 0, 10, 10), R(20, 20, 1, 1), false},
		{"one pixel overlap", R(0, 0, 10, 10), R(9, 9, 5, 5), true},
		{"zero width", R(0, 0, 0, 10), R(0, 0, 10, 10), false},
		{"negative height", R(0, 0, 10, 10), R(2, 2, 3, -3), false},
		{"negative coordinates", R(-10, -10, 6, 6), R(-5, -5, 6, 6), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Intersects(tt.b, tt.a); got != tt.want {
				t.Errorf("Intersects(%v, %v) = %v, want %v (symmetry)", tt.b, tt.a, got, tt.want)
			}
			if got := tt.a.Intersects(tt.b); got != tt.want {
				t.Errorf("method form = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRectConversions(t *testing.T) {
	r := R(2, 3, 4, 5)
	if got := r.Image(); got != image.Rect(2, 3, 6, 8) {
		t.Errorf("Image() = %v", got)
	}
	if got := FromImage(image.Rect(6, 8, 2, 3)); got != r {
		t.Errorf("FromImage() = %v, want %v", got, r)
	}
	if !r.Contains(2, 3) || r.Contains(6, 3) || r.Contains(2, 8) {
		t.Error("Contains edges wrong")
	}
}

func TestBoundSettersTakeEffectImmediately(t *testing.T) {
	a := NewBound(0, 0, 10, 10)
	b := NewBound(12, 0, 10, 10)
	if a.Colliding(b) {
		t.Fatal("bounds should start apart")
	}

	a.SetWidth(13)
	if !a.Colliding(b) {
		t.Error("widened bound should collide on the next test")
	}
	if a.Rect().W != 13 {
		t.Errorf("Rect().W = %d, want 13", a.Rect().W)
	}

	a.SetWidth(12)
	if a.Colliding(b) {
		t.Error("edge-adjacent bounds must not collide")
	}

	a.SetX(1)
	if !b.Colliding(a) {
		t.Error("moved bound should collide")
	}

	a.SetY(10)
	if a.Colliding(b) {
		t.Error("bound moved below should not collide")
	}

	a.SetHeight(0)
	a.SetY(0)
	if a.Colliding(b) {
		t.Error("zero height bound must not collide")
	}
}

func TestBoundAccessors(t *testing.T) {
	b := NewBound(1, 2, 3, 4)
	b.Translate(10, 20)
	if b.X() != 11 || b.Y() != 22 || b.Width() != 3 || b.Height() != 4 {
		t.Errorf("bound = (%d,%d %dx%d)", b.X(), b.Y(), b.Width(), b.Height())
	}
	b.SetPosition(0, 0)
	if b.Rect() != R(0, 0, 3, 4) {
		t.Errorf("Rect() = %v", b.Rect())
	}

	var nilBound *Bound
	if nilBound.Colliding(b) || b.Colliding(nil) {
		t.Error("nil bound must not collide")
	}
}
