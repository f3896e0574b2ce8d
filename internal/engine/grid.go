package engine

import (
	"fmt"

	"github.com/piwi3910/BoxPack/internal/model"
)

// GridPacker is a baseline packer that keeps a dense occupancy grid and
// places each box at the first free cell, scanning rows top to bottom and
// cells left to right. It is slow and memory hungry but easy to trust, so
// the tests use it as an oracle for the tree.
type GridPacker struct {
	width      int
	rows       [][]int // 0 = free, otherwise 1-based placement index
	placements []model.Placement
}

// NewGridPacker creates an empty grid for a container of the given width.
func NewGridPacker(width int) (*GridPacker, error) {
	if width <= 0 {
		return nil, fmt.Errorf("container width %d: %w", width, model.ErrInvalidDimension)
	}
	return &GridPacker{width: width}, nil
}

// Insert places a box at the first free cell where it fits.
func (g *GridPacker) Insert(box model.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if box.Width > g.width {
		return &RejectedBoxError{Box: box, Width: g.width}
	}

	// A fully empty row always exists below the placed boxes, so the scan
	// terminates.
	for y := 0; ; y++ {
		g.grow(y + box.Height)
		for x := 0; x+box.Width <= g.width; x++ {
			if g.rows[y][x] != 0 || !g.free(x, y, box.Width, box.Height) {
				continue
			}
			g.placements = append(g.placements, model.Placement{Box: box, X: x, Y: y})
			g.fill(x, y, box.Width, box.Height, len(g.placements))
			return nil
		}
	}
}

func (g *GridPacker) grow(height int) {
	for len(g.rows) < height {
		g.rows = append(g.rows, make([]int, g.width))
	}
}

func (g *GridPacker) free(x, y, w, h int) bool {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			if g.rows[yy][xx] != 0 {
				return false
			}
		}
	}
	return true
}

func (g *GridPacker) fill(x, y, w, h, tag int) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			g.rows[yy][xx] = tag
		}
	}
}

// LinearExtent returns the deepest bottom edge of any placed box.
func (g *GridPacker) LinearExtent() int {
	depth := 0
	for _, p := range g.placements {
		if b := p.Rect().BottomEdge(); b > depth {
			depth = b
		}
	}
	return depth
}

// Placements returns the placed boxes in insertion order.
func (g *GridPacker) Placements() []model.Placement {
	out := make([]model.Placement, len(g.placements))
	copy(out, g.placements)
	return out
}

// Cell returns the 1-based placement index occupying (x, y), or 0 if free.
func (g *GridPacker) Cell(x, y int) int {
	if y < 0 || y >= len(g.rows) || x < 0 || x >= g.width {
		return 0
	}
	return g.rows[y][x]
}
