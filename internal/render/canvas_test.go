package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestFillAndStrokeRect(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}

	Clear(dst, black)
	StrokeRect(dst, image.Rect(1, 1, 7, 7), white)

	if dst.RGBAAt(1, 1) != white || dst.RGBAAt(6, 6) != white {
		t.Error("outline corners not drawn")
	}
	if dst.RGBAAt(3, 3) != black {
		t.Error("outline filled the interior")
	}
	if dst.RGBAAt(7, 7) != black {
		t.Error("outline drawn outside the rectangle")
	}

	FillRect(dst, image.Rect(-5, -5, 2, 2), white)
	if dst.RGBAAt(0, 0) != white {
		t.Error("clipped fill missing")
	}
}

func TestDrawScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.SetRGBA(0, 0, color.RGBA{0, 255, 0, 255})
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))

	DrawScaled(dst, image.Rect(0, 0, 4, 4), src)
	if dst.RGBAAt(3, 3) != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("scaled pixel = %v", dst.RGBAAt(3, 3))
	}
	DrawScaled(dst, image.Rect(0, 0, 4, 4), nil)
}

func TestFillCircle(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	red := color.RGBA{255, 0, 0, 255}
	FillCircle(dst, 10, 10, 5, red)

	if dst.RGBAAt(10, 10) != red {
		t.Errorf("centre = %v", dst.RGBAAt(10, 10))
	}
	if dst.RGBAAt(1, 1).A != 0 {
		t.Error("corner painted")
	}
}

func TestTextMeasureAndDraw(t *testing.T) {
	w, h := MeasureText("FPS: 60")
	if w != 7*7 || h != 13 {
		t.Errorf("MeasureText = %dx%d, want 49x13", w, h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	DrawText(dst, "FPS: 60", 0, 0, color.White)
	lit := false
	for i := 3; i < len(dst.Pix); i += 4 {
		if dst.Pix[i] != 0 {
			lit = true
			break
		}
	}
	if !lit {
		t.Error("DrawText produced no pixels")
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dot.png")
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := FileLoader{}.LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if got.Bounds().Dx() != 3 || got.Bounds().Dy() != 2 {
		t.Errorf("bounds = %v", got.Bounds())
	}

	if img := Load(FileLoader{}, filepath.Join(dir, "missing.png"), nil); img != nil {
		t.Error("Load of a missing file should return nil")
	}
}
