package sprite

import (
	"fmt"
	"image"

	"chosenoffset.com/framekit/internal/anim"
)

// subImager is implemented by every concrete image type in the standard
// library.
type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Sheet is an image divided into a grid of equally sized cells.
type Sheet struct {
	img          image.Image
	cellW, cellH int
	cols, rows   int
}

// NewSheet divides img into cellW x cellH cells. Partial cells at the right
// and bottom edges are ignored.
func NewSheet(img image.Image, cellW, cellH int) (*Sheet, error) {
	if img == nil {
		return nil, fmt.Errorf("sprite sheet has no image")
	}
	if cellW <= 0 || cellH <= 0 {
		return nil, fmt.Errorf("invalid cell dimensions: %dx%d", cellW, cellH)
	}
	if _, ok := img.(subImager); !ok {
		return nil, fmt.Errorf("sprite sheet image %T cannot be sliced", img)
	}
	b := img.Bounds()
	s := &Sheet{
		img:   img,
		cellW: cellW,
		cellH: cellH,
		cols:  b.Dx() / cellW,
		rows:  b.Dy() / cellH,
	}
	if s.cols == 0 || s.rows == 0 {
		return nil, fmt.Errorf("sprite sheet %dx%d is smaller than one %dx%d cell", b.Dx(), b.Dy(), cellW, cellH)
	}
	return s, nil
}

// Grid returns the number of columns and rows.
func (s *Sheet) Grid() (cols, rows int) {
	return s.cols, s.rows
}

// CellSize returns the size of one cell.
func (s *Sheet) CellSize() (w, h int) {
	return s.cellW, s.cellH
}

// Sprite returns the cell at column col, row row.
func (s *Sheet) Sprite(col, row int) (*Sprite, error) {
	if col < 0 || col >= s.cols || row < 0 || row >= s.rows {
		return nil, fmt.Errorf("cell (%d,%d) outside %dx%d sheet", col, row, s.cols, s.rows)
	}
	origin := s.img.Bounds().Min
	r := image.Rect(col*s.cellW, row*s.cellH, (col+1)*s.cellW, (row+1)*s.cellH).Add(origin)
	return &Sprite{img: s.img.(subImager).SubImage(r)}, nil
}

// Split returns every cell in row-major order.
func (s *Sheet) Split() []*Sprite {
	out := make([]*Sprite, 0, s.cols*s.rows)
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			sp, _ := s.Sprite(col, row)
			out = append(out, sp)
		}
	}
	return out
}

// Strip returns count consecutive cells of one row starting at column start,
// ready to drive an animation.
func (s *Sheet) Strip(row, start, count int) (anim.Frames[*Sprite], error) {
	if count <= 0 {
		return nil, anim.ErrEmptySequence
	}
	frames := make(anim.Frames[*Sprite], 0, count)
	for i := 0; i < count; i++ {
		sp, err := s.Sprite(start+i, row)
		if err != nil {
			return nil, err
		}
		frames = append(frames, sp)
	}
	return frames, nil
}
