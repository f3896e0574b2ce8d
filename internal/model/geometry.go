package model

import "fmt"

// Point is an integer coordinate. X runs along the container width,
// Y along the depth.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewPoint(x, y int) Point {
	return Point{X: x, Y: y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an origin plus extents along width (XDist) and depth (YDist).
type Rect struct {
	Origin Point `json:"origin"`
	XDist  int   `json:"xdist"`
	YDist  int   `json:"ydist"`
}

// NewRect builds a rectangle, rejecting negative extents.
func NewRect(origin Point, xdist, ydist int) (Rect, error) {
	if xdist < 0 || ydist < 0 {
		return Rect{}, fmt.Errorf("rect %dx%d at %s: %w", xdist, ydist, origin, ErrInvalidDimension)
	}
	return Rect{Origin: origin, XDist: xdist, YDist: ydist}, nil
}

// Area returns the rectangle's area.
func (r Rect) Area() int {
	return r.XDist * r.YDist
}

// RightEdge returns the x coordinate just past the rectangle.
func (r Rect) RightEdge() int {
	return r.Origin.X + r.XDist
}

// BottomEdge returns the y coordinate just past the rectangle.
func (r Rect) BottomEdge() int {
	return r.Origin.Y + r.YDist
}

// Overlaps returns true if the two rectangles share interior area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.Origin.X < o.RightEdge() && o.Origin.X < r.RightEdge() &&
		r.Origin.Y < o.BottomEdge() && o.Origin.Y < r.BottomEdge()
}

func (r Rect) String() string {
	return fmt.Sprintf("%dx%d@%s", r.XDist, r.YDist, r.Origin)
}
