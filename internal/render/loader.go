package render

import (
	"fmt"
	"image"
	"log/slog"
	"os"

	// decoders for LoadImage
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"chosenoffset.com/framekit/internal/logger"
)

// FileLoader decodes images from the local filesystem. It needs no graphics
// context, so it works before a window exists and under any backend.
type FileLoader struct{}

var _ ResourceLoader = FileLoader{}

// LoadImage decodes the image at path in any registered format.
func (FileLoader) LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// Load wraps loader.LoadImage for resources that are optional: on failure it
// logs a warning and returns nil.
func Load(loader ResourceLoader, path string, log *slog.Logger) image.Image {
	img, err := loader.LoadImage(path)
	if err != nil {
		if log == nil {
			log = logger.L()
		}
		log.Warn("image not loaded", "path", path, "error", err)
		return nil
	}
	return img
}
