package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Box is an unplaced item. Height maps to the depth extent and Width to
// the width extent of the container.
type Box struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// NewBox creates a box with a short random ID. Both extents must be positive.
func NewBox(label string, h, w int) (Box, error) {
	if h <= 0 || w <= 0 {
		return Box{}, fmt.Errorf("box %q %dx%d: %w", label, h, w, ErrInvalidDimension)
	}
	return Box{
		ID:     uuid.New().String()[:8],
		Label:  label,
		Height: h,
		Width:  w,
	}, nil
}

// Validate reports whether both extents are positive.
func (b Box) Validate() error {
	if b.Height <= 0 || b.Width <= 0 {
		return fmt.Errorf("box %q %dx%d: %w", b.Label, b.Height, b.Width, ErrInvalidDimension)
	}
	return nil
}

func (b Box) Area() int {
	return b.Height * b.Width
}

// Footprint returns the rectangle the box covers when placed at origin.
// A box with a negative extent yields ErrInvalidDimension.
func (b Box) Footprint(origin Point) (Rect, error) {
	return NewRect(origin, b.Width, b.Height)
}

func (b Box) String() string {
	if b.Label == "" {
		return fmt.Sprintf("%dx%d", b.Height, b.Width)
	}
	return fmt.Sprintf("%s:%dx%d", b.Label, b.Height, b.Width)
}

// Order selects how the driver sorts boxes before insertion.
type Order string

const (
	OrderDescending Order = "descending" // Largest area first
	OrderAscending  Order = "ascending"  // Smallest area first
	OrderBest       Order = "best"       // Run both, keep the shallower packing
	OrderGenetic    Order = "genetic"    // Evolve the insertion order (slower, often shallower)
)

// ParseOrder accepts the long names plus the short forms "desc" and "asc".
func ParseOrder(s string) (Order, error) {
	switch s {
	case "descending", "desc", "":
		return OrderDescending, nil
	case "ascending", "asc":
		return OrderAscending, nil
	case "best":
		return OrderBest, nil
	case "genetic", "ga":
		return OrderGenetic, nil
	default:
		return "", fmt.Errorf("unknown order %q", s)
	}
}

// EngineKind selects the placement engine.
type EngineKind string

const (
	EngineTree EngineKind = "tree" // Space-partitioning tree (default)
	EngineGrid EngineKind = "grid" // Dense occupancy grid scan (baseline)
)

func ParseEngine(s string) (EngineKind, error) {
	switch s {
	case "tree", "":
		return EngineTree, nil
	case "grid":
		return EngineGrid, nil
	default:
		return "", fmt.Errorf("unknown engine %q", s)
	}
}

// Settings holds the packing configuration.
type Settings struct {
	Width  int        `json:"width"`  // Container width
	Order  Order      `json:"order"`  // Sort order policy
	Engine EngineKind `json:"engine"` // Placement engine
}

func DefaultSettings() Settings {
	return Settings{
		Width:  96,
		Order:  OrderDescending,
		Engine: EngineTree,
	}
}

// Placement is a single box placed in the container.
type Placement struct {
	Box Box `json:"box"`
	X   int `json:"x"` // Offset from the left wall
	Y   int `json:"y"` // Offset from the container front
}

// Rect returns the area covered by the placement. Placed boxes have
// already passed Validate.
func (p Placement) Rect() Rect {
	return Rect{Origin: Point{X: p.X, Y: p.Y}, XDist: p.Box.Width, YDist: p.Box.Height}
}

// PackResult holds the outcome of one packing run.
type PackResult struct {
	Width      int         `json:"width"`
	Depth      int         `json:"depth"`
	Order      Order       `json:"order"`
	Engine     EngineKind  `json:"engine"`
	Placements []Placement `json:"placements"`
	Rejected   []Box       `json:"rejected,omitempty"`
}

// UsedArea returns the total area of placed boxes.
func (r PackResult) UsedArea() int {
	total := 0
	for _, p := range r.Placements {
		total += p.Box.Area()
	}
	return total
}

// TotalArea returns the container area up to the packed depth.
func (r PackResult) TotalArea() int {
	return r.Width * r.Depth
}

// Efficiency returns the usage percentage.
func (r PackResult) Efficiency() float64 {
	ta := r.TotalArea()
	if ta == 0 {
		return 0
	}
	return float64(r.UsedArea()) / float64(ta) * 100.0
}

// Job ties boxes, settings and an optional result together for save/load.
type Job struct {
	Name     string      `json:"name"`
	Boxes    []Box       `json:"boxes"`
	Settings Settings    `json:"settings"`
	Result   *PackResult `json:"result,omitempty"`
}

func NewJob() Job {
	return Job{
		Name:     "Untitled",
		Boxes:    []Box{},
		Settings: DefaultSettings(),
	}
}
