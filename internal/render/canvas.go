package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Clear fills the whole image with clr.
func Clear(dst xdraw.Image, clr color.Color) {
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(clr), image.Point{}, xdraw.Src)
}

// FillRect blends clr over r.
func FillRect(dst xdraw.Image, r image.Rectangle, clr color.Color) {
	xdraw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(clr), image.Point{}, xdraw.Over)
}

// StrokeRect draws a one pixel outline just inside r.
func StrokeRect(dst xdraw.Image, r image.Rectangle, clr color.Color) {
	r = r.Canon()
	if r.Empty() {
		return
	}
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), clr)
	FillRect(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), clr)
	FillRect(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y-1), clr)
	FillRect(dst, image.Rect(r.Max.X-1, r.Min.Y+1, r.Max.X, r.Max.Y-1), clr)
}

// DrawImage draws src with its top-left corner at (x, y).
func DrawImage(dst xdraw.Image, src image.Image, x, y int) {
	if src == nil {
		return
	}
	sb := src.Bounds()
	r := image.Rect(x, y, x+sb.Dx(), y+sb.Dy())
	xdraw.Draw(dst, r, src, sb.Min, xdraw.Over)
}

// DrawScaled draws src stretched into r with nearest-neighbour sampling,
// which keeps pixel art crisp.
func DrawScaled(dst xdraw.Image, r image.Rectangle, src image.Image) {
	if src == nil || r.Empty() {
		return
	}
	xdraw.NearestNeighbor.Scale(dst, r, src, src.Bounds(), xdraw.Over, nil)
}

// circleSegments is the polygon resolution used for circles.
const circleSegments = 48

// FillCircle draws a filled, anti-aliased circle.
func FillCircle(dst xdraw.Image, cx, cy, radius float32, clr color.Color) {
	if radius <= 0 {
		return
	}
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	ox, oy := float32(b.Min.X), float32(b.Min.Y)
	for i := 0; i <= circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		px := cx - ox + radius*float32(math.Cos(a))
		py := cy - oy + radius*float32(math.Sin(a))
		if i == 0 {
			z.MoveTo(px, py)
		} else {
			z.LineTo(px, py)
		}
	}
	z.ClosePath()
	z.DrawOp = xdraw.Over
	z.Draw(dst, b, image.NewUniform(clr), image.Point{})
}

// TextFace is the fixed-size face used for overlay text.
var TextFace font.Face = basicfont.Face7x13

// DrawText draws s with its top-left corner at (x, y).
func DrawText(dst xdraw.Image, s string, x, y int, clr color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(clr),
		Face: TextFace,
		Dot:  fixed.P(x, y+TextFace.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// MeasureText returns the pixel size of s drawn with TextFace.
func MeasureText(s string) (width, height int) {
	adv := font.MeasureString(TextFace, s)
	return adv.Ceil(), TextFace.Metrics().Height.Ceil()
}
