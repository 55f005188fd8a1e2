package sprite

import (
	"encoding/json"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"chosenoffset.com/framekit/internal/anim"
	"chosenoffset.com/framekit/internal/render"
)

// SequenceDefinition names a run of cells on one row of the sheet.
type SequenceDefinition struct {
	Name  string `json:"name"`
	Row   int    `json:"row"`
	Start int    `json:"start"`
	Count int    `json:"count"`
	Speed int    `json:"speed"` // ticks per frame
}

// CellDefinition names a single still cell.
type CellDefinition struct {
	Name string `json:"name"`
	Col  int    `json:"col"`
	Row  int    `json:"row"`
}

// AtlasConfig is the JSON description of a sprite sheet.
type AtlasConfig struct {
	Name       string               `json:"name"`
	ImagePath  string               `json:"image_path"` // relative to the JSON file
	CellWidth  int                  `json:"cell_width"`
	CellHeight int                  `json:"cell_height"`
	Sprites    []CellDefinition     `json:"sprites"`
	Animations []SequenceDefinition `json:"animations"`
}

// Atlas is a loaded sprite sheet with its named cells and sequences.
type Atlas struct {
	Config *AtlasConfig
	Sheet  *Sheet

	sprites   map[string]*Sprite
	sequences map[string]anim.Frames[*Sprite]
	speeds    map[string]int
}

// LoadAtlas loads an atlas from a JSON configuration file.
func LoadAtlas(configPath string, loader render.ResourceLoader) (*Atlas, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read atlas config %s: %w", configPath, err)
	}

	var config AtlasConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse atlas config %s: %w", configPath, err)
	}
	if config.ImagePath == "" {
		return nil, fmt.Errorf("image_path is required in atlas config")
	}

	imgPath := config.ImagePath
	if !filepath.IsAbs(imgPath) {
		imgPath = filepath.Join(filepath.Dir(configPath), imgPath)
	}
	img, err := loader.LoadImage(imgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load atlas image %s: %w", imgPath, err)
	}

	return NewAtlas(&config, img)
}

// NewAtlas builds an atlas from a parsed configuration and its image.
func NewAtlas(config *AtlasConfig, img image.Image) (*Atlas, error) {
	sheet, err := NewSheet(img, config.CellWidth, config.CellHeight)
	if err != nil {
		return nil, fmt.Errorf("atlas %s: %w", config.Name, err)
	}

	a := &Atlas{
		Config:    config,
		Sheet:     sheet,
		sprites:   make(map[string]*Sprite),
		sequences: make(map[string]anim.Frames[*Sprite]),
		speeds:    make(map[string]int),
	}
	for _, c := range config.Sprites {
		sp, err := sheet.Sprite(c.Col, c.Row)
		if err != nil {
			return nil, fmt.Errorf("atlas %s sprite %s: %w", config.Name, c.Name, err)
		}
		a.sprites[c.Name] = sp
	}
	for _, sd := range config.Animations {
		frames, err := sheet.Strip(sd.Row, sd.Start, sd.Count)
		if err != nil {
			return nil, fmt.Errorf("atlas %s animation %s: %w", config.Name, sd.Name, err)
		}
		a.sequences[sd.Name] = frames
		a.speeds[sd.Name] = sd.Speed
	}
	return a, nil
}

// Sprite returns a named still cell.
func (a *Atlas) Sprite(name string) (*Sprite, bool) {
	sp, ok := a.sprites[name]
	return sp, ok
}

// Frames returns the frames of a named sequence.
func (a *Atlas) Frames(name string) (anim.Frames[*Sprite], bool) {
	f, ok := a.sequences[name]
	return f, ok
}

// Animation creates a fresh, playing animation for a named sequence at the
// speed given in the atlas.
func (a *Atlas) Animation(name string) (*anim.Animation[*Sprite], error) {
	frames, ok := a.sequences[name]
	if !ok {
		return nil, fmt.Errorf("animation not found: %s", name)
	}
	return anim.New[*Sprite](frames, a.speeds[name])
}
