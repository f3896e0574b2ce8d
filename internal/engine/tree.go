package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/BoxPack/internal/model"
)

// RejectedBoxError is returned by Insert when a box is wider than the
// container. It unwraps to model.ErrRejectedBox.
type RejectedBoxError struct {
	Box   model.Box
	Width int
}

func (e *RejectedBoxError) Error() string {
	return fmt.Sprintf("box %s (width %d) exceeds container width %d", e.Box, e.Box.Width, e.Width)
}

func (e *RejectedBoxError) Unwrap() error {
	return model.ErrRejectedBox
}

// Tree packs boxes into a fixed-width container by growing a
// space-partitioning tree. Rows are filled left to right before a box is
// stacked beneath another, and a new column segment is only opened below
// the leftmost column once nothing else fits.
//
// A Tree is not safe for concurrent use.
type Tree struct {
	width    int
	root     *HeightSplit
	frontier int

	// leaves holds every Occupied node in insertion order.
	leaves []*Occupied

	// byDepth holds the same leaves sorted by origin depth. Together with
	// tallest it limits overlap checks to the candidate's row band.
	byDepth []*Occupied
	tallest int
}

// NewTree creates an empty tree for a container of the given width.
func NewTree(width int) (*Tree, error) {
	if width <= 0 {
		return nil, fmt.Errorf("container width %d: %w", width, model.ErrInvalidDimension)
	}
	return &Tree{width: width}, nil
}

// Width returns the container width.
func (t *Tree) Width() int { return t.width }

// Frontier returns the depth of the leftmost column. Boxes are only
// stacked beneath a node whose bottom edge is above the frontier.
func (t *Tree) Frontier() int { return t.frontier }

// Len returns the number of boxes placed.
func (t *Tree) Len() int { return len(t.leaves) }

// Insert places a box. It returns a *RejectedBoxError if the box is wider
// than the container and model.ErrInvalidDimension for non-positive extents.
// Every other box is placed; Insert never backtracks.
func (t *Tree) Insert(box model.Box) error {
	if err := box.Validate(); err != nil {
		return err
	}
	if box.Width > t.width {
		return &RejectedBoxError{Box: box, Width: t.width}
	}

	if t.root == nil {
		t.root = t.attach(box, model.Point{})
		t.frontier = t.root.rect.BottomEdge()
		return nil
	}

	if t.extendRow(t.root, box) || t.extendColumn(t.root, box) {
		return nil
	}
	t.extendSpine(box)
	return nil
}

// extendRow tries to place box to the right of h's box, scanning along the
// row and into the columns hanging off it.
func (t *Tree) extendRow(h *HeightSplit, box model.Box) bool {
	w := h.Primary
	if w.Next == nil {
		origin := model.Point{X: w.rect.RightEdge(), Y: w.rect.Origin.Y}
		if !t.fits(box, origin) {
			return false
		}
		w.Next = t.attach(box, origin)
		return true
	}
	return t.extendRow(w.Next, box) || t.extendColumn(w.Next, box)
}

// extendColumn tries to place box below h's box. A new row may only start
// above the frontier.
func (t *Tree) extendColumn(h *HeightSplit, box model.Box) bool {
	if h.Next == nil {
		origin := model.Point{X: h.rect.Origin.X, Y: h.rect.BottomEdge()}
		if origin.Y >= t.frontier || !t.fits(box, origin) {
			return false
		}
		h.Next = t.attach(box, origin)
		return true
	}
	return t.extendRow(h.Next, box) || t.extendColumn(h.Next, box)
}

// extendSpine appends box beneath the last node of the leftmost column and
// advances the frontier. The origin slides down past any box from a
// neighbouring column that already reaches into that space.
func (t *Tree) extendSpine(box model.Box) {
	last := t.root
	for last.Next != nil {
		last = last.Next
	}
	origin := t.clearBelow(box, model.Point{X: last.rect.Origin.X, Y: last.rect.BottomEdge()})
	last.Next = t.attach(box, origin)
	if bottom := last.Next.rect.BottomEdge(); bottom > t.frontier {
		t.frontier = bottom
	}
}

// fits reports whether box can sit at origin without crossing the right wall
// or overlapping a placed box.
func (t *Tree) fits(box model.Box, origin model.Point) bool {
	r := footprint(box, origin)
	if r.RightEdge() > t.width {
		return false
	}
	return t.overlapping(r) == nil
}

// overlapping returns a placed leaf that overlaps r, or nil. Only leaves
// whose origin lies in (r.Origin.Y-tallest, r.BottomEdge()) can overlap.
func (t *Tree) overlapping(r model.Rect) *Occupied {
	lo := sort.Search(len(t.byDepth), func(i int) bool {
		return t.byDepth[i].rect.Origin.Y > r.Origin.Y-t.tallest
	})
	for i := lo; i < len(t.byDepth) && t.byDepth[i].rect.Origin.Y < r.BottomEdge(); i++ {
		if t.byDepth[i].rect.Overlaps(r) {
			return t.byDepth[i]
		}
	}
	return nil
}

// clearBelow moves origin down until box no longer overlaps a placed box.
// Every depth skipped still overlaps the leaf jumped past, so the result is
// the shallowest free origin whichever leaf is found first.
func (t *Tree) clearBelow(box model.Box, origin model.Point) model.Point {
	for {
		leaf := t.overlapping(footprint(box, origin))
		if leaf == nil {
			return origin
		}
		origin.Y = leaf.rect.BottomEdge()
	}
}

// attach builds a new chain and records its leaf. A chain that crosses the
// right wall means the search above is broken.
func (t *Tree) attach(box model.Box, origin model.Point) *HeightSplit {
	r := footprint(box, origin)
	if r.RightEdge() > t.width {
		panic(fmt.Sprintf("StructuralInvariantViolation: chain %s crosses container width %d", r, t.width))
	}
	h := newChain(box, r)
	leaf := h.Primary.Primary
	t.leaves = append(t.leaves, leaf)

	i := sort.Search(len(t.byDepth), func(j int) bool { return t.byDepth[j].rect.Origin.Y > r.Origin.Y })
	t.byDepth = append(t.byDepth, nil)
	copy(t.byDepth[i+1:], t.byDepth[i:])
	t.byDepth[i] = leaf
	if r.YDist > t.tallest {
		t.tallest = r.YDist
	}
	return h
}

// footprint is Box.Footprint for boxes Insert has already validated.
func footprint(box model.Box, origin model.Point) model.Rect {
	r, err := box.Footprint(origin)
	if err != nil {
		panic(fmt.Sprintf("StructuralInvariantViolation: %v", err))
	}
	return r
}

// LinearExtent returns the container depth needed to hold every box placed
// so far: the deepest bottom edge of any HeightSplit node.
func (t *Tree) LinearExtent() int {
	depth := 0
	t.Walk(func(n Node) {
		if h, ok := n.(*HeightSplit); ok {
			if b := h.rect.BottomEdge(); b > depth {
				depth = b
			}
		}
	})
	return depth
}

// Walk visits every node in pre-order. It does nothing on an empty tree.
func (t *Tree) Walk(fn func(Node)) {
	if t.root == nil {
		return
	}
	walk(t.root, fn)
}

// Placements returns the placed boxes in walk order.
func (t *Tree) Placements() []model.Placement {
	var out []model.Placement
	t.Walk(func(n Node) {
		if o, ok := n.(*Occupied); ok {
			out = append(out, model.Placement{Box: o.Box, X: o.rect.Origin.X, Y: o.rect.Origin.Y})
		}
	})
	return out
}
