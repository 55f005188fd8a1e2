package sprite

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"chosenoffset.com/framekit/internal/render"
)

// CellSize is the edge length of generated placeholder cells.
const CellSize = 16

// Palette holds the colours used by the placeholder art.
var Palette = struct {
	Body       color.RGBA
	Outline    color.RGBA
	Coin       color.RGBA
	Wall       color.RGBA
	Background color.RGBA
}{
	Body:       color.RGBA{0, 255, 100, 255},
	Outline:    color.RGBA{0, 120, 50, 255},
	Coin:       color.RGBA{255, 215, 0, 255},
	Wall:       color.RGBA{140, 145, 155, 255},
	Background: color.RGBA{40, 40, 45, 255},
}

// SolidCell creates a single-colour cell.
func SolidCell(col color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CellSize, CellSize))
	render.Clear(img, col)
	return img
}

// BorderedCell creates a filled cell with a border of the given width.
func BorderedCell(fill, border color.Color, width int) *image.RGBA {
	img := SolidCell(border)
	inner := image.Rect(width, width, CellSize-width, CellSize-width)
	render.FillRect(img, inner, fill)
	return img
}

// CircleCell creates a transparent cell holding an outlined disc of the
// given radius.
func CircleCell(fill, outline color.Color, radius float32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CellSize, CellSize))
	c := float32(CellSize) / 2
	render.FillCircle(img, c, c, radius+1, outline)
	render.FillCircle(img, c, c, radius, fill)
	return img
}

// ComposeSheet lays cells out row-major on a grid with the given number of
// columns. Nil cells stay transparent.
func ComposeSheet(cells []*image.RGBA, columns int) *image.RGBA {
	if columns < 1 {
		columns = 1
	}
	rows := (len(cells) + columns - 1) / columns
	sheet := image.NewRGBA(image.Rect(0, 0, columns*CellSize, rows*CellSize))
	for i, cell := range cells {
		if cell == nil {
			continue
		}
		x := (i % columns) * CellSize
		y := (i / columns) * CellSize
		render.DrawImage(sheet, cell, x, y)
	}
	return sheet
}

// Darken scales the colour channels by factor.
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// SavePNG saves an image to a PNG file.
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}

// DemoAtlas builds the demo sheet: a four frame pulsing walker on row 0, a
// three frame spinning coin on row 1 and a wall block.
func DemoAtlas(name, imagePath string) (*AtlasConfig, *image.RGBA) {
	cells := []*image.RGBA{
		CircleCell(Palette.Body, Palette.Outline, 5),
		CircleCell(Palette.Body, Palette.Outline, 6),
		CircleCell(Palette.Body, Palette.Outline, 7),
		CircleCell(Palette.Body, Palette.Outline, 6),

		CircleCell(Palette.Coin, Darken(Palette.Coin, 0.6), 6),
		coinEdge(4),
		coinEdge(1),
		BorderedCell(Palette.Wall, Darken(Palette.Wall, 0.4), 1),
	}
	cfg := &AtlasConfig{
		Name:       name,
		ImagePath:  imagePath,
		CellWidth:  CellSize,
		CellHeight: CellSize,
		Sprites: []CellDefinition{
			{Name: "wall", Col: 3, Row: 1},
		},
		Animations: []SequenceDefinition{
			{Name: "walk", Row: 0, Start: 0, Count: 4, Speed: 8},
			{Name: "coin", Row: 1, Start: 0, Count: 3, Speed: 6},
		},
	}
	return cfg, ComposeSheet(cells, 4)
}

// coinEdge draws the coin seen from an angle as a narrowing bar.
func coinEdge(halfWidth int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, CellSize, CellSize))
	c := CellSize / 2
	render.FillRect(img, image.Rect(c-halfWidth, 2, c+halfWidth, CellSize-2), Palette.Coin)
	return img
}

// WriteDemoAssets writes the demo sheet PNG and its atlas JSON into dir and
// returns the JSON path.
func WriteDemoAssets(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	cfg, img := DemoAtlas("demo", "demo.png")
	if err := SavePNG(img, filepath.Join(dir, cfg.ImagePath)); err != nil {
		return "", fmt.Errorf("failed to write sheet: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", err
	}
	jsonPath := filepath.Join(dir, "demo.json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write atlas config: %w", err)
	}
	return jsonPath, nil
}
