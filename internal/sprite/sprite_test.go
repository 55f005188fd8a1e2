package sprite

import (
	"encoding/json"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"chosenoffset.com/framekit/internal/logger"
	"chosenoffset.com/framekit/internal/render"
)

// numbered returns a w x h image whose pixel (x, y) has R=x and G=y.
func numbered(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestFlipHorizontal(t *testing.T) {
	s := New(numbered(4, 2))
	f := s.FlipHorizontal()

	img := f.Image().(*image.RGBA)
	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			if got := img.RGBAAt(x, y).R; got != uint8(3-x) {
				t.Errorf("flipped (%d,%d).R = %d, want %d", x, y, got, 3-x)
			}
		}
	}
	if w, h := f.Size(); w != 4 || h != 2 {
		t.Errorf("Size() = %dx%d", w, h)
	}
}

func TestNilSprite(t *testing.T) {
	var s *Sprite
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	s.Draw(dst, 0, 0, 4, 4)
	if s.FlipHorizontal() != nil || s.Image() != nil {
		t.Error("nil sprite should stay nil")
	}
	if New(nil) != nil {
		t.Error("New(nil) should be nil")
	}

	missing := filepath.Join(t.TempDir(), "nope.png")
	if Load(render.FileLoader{}, missing, logger.Discard()) != nil {
		t.Error("Load of a missing file should be nil")
	}
}

func TestSpriteDrawScales(t *testing.T) {
	s := New(numbered(2, 2))
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	s.Draw(dst, 0, 0, 8, 8)
	if got := dst.RGBAAt(7, 7); got.R != 1 || got.G != 1 {
		t.Errorf("bottom-right = %v, want source (1,1)", got)
	}
}

func TestSheetSplit(t *testing.T) {
	sheet, err := NewSheet(numbered(10, 7), 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if cols, rows := sheet.Grid(); cols != 3 || rows != 2 {
		t.Fatalf("Grid() = %dx%d, want 3x2", cols, rows)
	}

	sprites := sheet.Split()
	if len(sprites) != 6 {
		t.Fatalf("Split() = %d sprites, want 6", len(sprites))
	}
	// cell 4 is column 1, row 1: top-left pixel (3,3)
	img := sprites[4].Image()
	r, g, _, _ := img.At(img.Bounds().Min.X, img.Bounds().Min.Y).RGBA()
	if r>>8 != 3 || g>>8 != 3 {
		t.Errorf("cell 4 origin pixel = (%d,%d), want (3,3)", r>>8, g>>8)
	}

	if _, err := sheet.Sprite(3, 0); err == nil {
		t.Error("Sprite outside the grid should fail")
	}
}

func TestNewSheetErrors(t *testing.T) {
	if _, err := NewSheet(numbered(4, 4), 0, 4); err == nil {
		t.Error("zero cell width accepted")
	}
	if _, err := NewSheet(numbered(4, 4), 8, 8); err == nil {
		t.Error("cell larger than image accepted")
	}
	if _, err := NewSheet(nil, 4, 4); err == nil {
		t.Error("nil image accepted")
	}
}

func TestStripDrivesAnimation(t *testing.T) {
	sheet, _ := NewSheet(numbered(8, 2), 2, 2)
	frames, err := sheet.Strip(0, 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	if frames.Len() != 3 {
		t.Fatalf("Len() = %d", frames.Len())
	}
	if _, err := sheet.Strip(0, 2, 3); err == nil {
		t.Error("strip past the last column accepted")
	}
}

func TestAtlasConfigParsing(t *testing.T) {
	jsonData := `{
		"name": "hero",
		"image_path": "hero.png",
		"cell_width": 16,
		"cell_height": 16,
		"sprites": [{"name": "idle", "col": 0, "row": 0}],
		"animations": [{"name": "run", "row": 1, "start": 0, "count": 6, "speed": 4}]
	}`

	var config AtlasConfig
	if err := json.Unmarshal([]byte(jsonData), &config); err != nil {
		t.Fatalf("Failed to parse JSON: %v", err)
	}
	if config.Name != "hero" || config.CellWidth != 16 || config.CellHeight != 16 {
		t.Errorf("config = %+v", config)
	}
	if len(config.Animations) != 1 || config.Animations[0].Speed != 4 || config.Animations[0].Count != 6 {
		t.Errorf("animations = %+v", config.Animations)
	}
}

func TestLoadDemoAtlas(t *testing.T) {
	path, err := WriteDemoAssets(t.TempDir())
	if err != nil {
		t.Fatalf("WriteDemoAssets: %v", err)
	}

	a, err := LoadAtlas(path, render.FileLoader{})
	if err != nil {
		t.Fatalf("LoadAtlas: %v", err)
	}

	walk, err := a.Animation("walk")
	if err != nil {
		t.Fatal(err)
	}
	if walk.Len() != 4 || walk.Speed() != 8 {
		t.Errorf("walk: len=%d speed=%d", walk.Len(), walk.Speed())
	}
	for i := 0; i < 8; i++ {
		walk.Update()
	}
	if walk.Index() != 1 {
		t.Errorf("walk index after 8 ticks = %d, want 1", walk.Index())
	}

	if _, ok := a.Sprite("wall"); !ok {
		t.Error("wall sprite missing")
	}
	if _, ok := a.Frames("coin"); !ok {
		t.Error("coin frames missing")
	}
	if _, err := a.Animation("fly"); err == nil {
		t.Error("unknown animation accepted")
	}
}

func TestLoadAtlasErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadAtlas(filepath.Join(dir, "missing.json"), render.FileLoader{}); err == nil {
		t.Error("missing config accepted")
	}

	cfg := &AtlasConfig{Name: "bad", CellWidth: 4, CellHeight: 4,
		Animations: []SequenceDefinition{{Name: "x", Count: 1, Speed: 0}}}
	a, err := NewAtlas(cfg, numbered(8, 8))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Animation("x"); err == nil {
		t.Error("zero speed animation accepted")
	}
}
