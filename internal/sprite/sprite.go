// Package sprite loads images, cuts sprite sheets into frames and describes
// named animations in JSON atlases.
package sprite

import (
	"image"
	"log/slog"

	xdraw "golang.org/x/image/draw"

	"chosenoffset.com/framekit/internal/render"
)

// Sprite is an immutable image drawn at an arbitrary size.
type Sprite struct {
	img image.Image
}

// New wraps img. A nil image gives a nil sprite.
func New(img image.Image) *Sprite {
	if img == nil {
		return nil
	}
	return &Sprite{img: img}
}

// Load reads a sprite from path. On failure it logs a warning and returns
// nil; drawing a nil sprite does nothing.
func Load(loader render.ResourceLoader, path string, log *slog.Logger) *Sprite {
	return New(render.Load(loader, path, log))
}

// Image returns the underlying image.
func (s *Sprite) Image() image.Image {
	if s == nil {
		return nil
	}
	return s.img
}

// Size returns the natural size in pixels.
func (s *Sprite) Size() (width, height int) {
	if s == nil {
		return 0, 0
	}
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// FlipHorizontal returns a mirrored copy.
func (s *Sprite) FlipHorizontal() *Sprite {
	if s == nil {
		return nil
	}
	b := s.img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			out.Set(b.Dx()-1-x, y, s.img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return &Sprite{img: out}
}

// Draw renders the sprite stretched to w x h with its top-left at (x, y).
func (s *Sprite) Draw(dst xdraw.Image, x, y, w, h int) {
	if s == nil {
		return
	}
	render.DrawScaled(dst, image.Rect(x, y, x+w, y+h), s.img)
}
