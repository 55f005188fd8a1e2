package ebiten

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"chosenoffset.com/framekit/internal/render"
)

// ResourceLoader loads images through ebitenutil so the same decoders the
// window uses apply. Only the CPU copy is kept.
type ResourceLoader struct{}

// NewResourceLoader creates a new Ebiten-based resource loader.
func NewResourceLoader() render.ResourceLoader {
	return ResourceLoader{}
}

// LoadImage loads an image from the specified file path.
func (ResourceLoader) LoadImage(path string) (image.Image, error) {
	gpu, img, err := ebitenutil.NewImageFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	gpu.Deallocate()
	return img, nil
}
