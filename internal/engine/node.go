package engine

import (
	"fmt"

	"github.com/piwi3910/BoxPack/internal/model"
)

// Node is one of HeightSplit, WidthSplit or Occupied.
type Node interface {
	Rect() model.Rect
	isNode()
}

// HeightSplit anchors a box's column. Primary holds the box's own row
// chain; Next holds whatever sits directly below it.
type HeightSplit struct {
	rect    model.Rect
	Primary *WidthSplit
	Next    *HeightSplit
}

// WidthSplit anchors a box's row. Primary is the box's leaf; Next holds
// the chain of whatever sits directly to its right.
type WidthSplit struct {
	rect    model.Rect
	Primary *Occupied
	Next    *HeightSplit
}

// Occupied is the area consumed by one placed box.
type Occupied struct {
	rect model.Rect
	Box  model.Box
}

func (n *HeightSplit) Rect() model.Rect { return n.rect }
func (n *WidthSplit) Rect() model.Rect  { return n.rect }
func (n *Occupied) Rect() model.Rect    { return n.rect }

func (*HeightSplit) isNode() {}
func (*WidthSplit) isNode()  {}
func (*Occupied) isNode()    {}

// newChain builds the HeightSplit -> WidthSplit -> Occupied chain for a box
// covering r. All three nodes share the footprint.
func newChain(box model.Box, r model.Rect) *HeightSplit {
	return &HeightSplit{
		rect: r,
		Primary: &WidthSplit{
			rect:    r,
			Primary: &Occupied{rect: r, Box: box},
		},
	}
}

// walk visits n and everything it owns in pre-order: the node, its row
// (box then right neighbours), then the nodes below it.
func walk(n Node, fn func(Node)) {
	switch v := n.(type) {
	case *HeightSplit:
		if v == nil {
			return
		}
		fn(v)
		if v.Primary != nil {
			walk(v.Primary, fn)
		}
		if v.Next != nil {
			walk(v.Next, fn)
		}
	case *WidthSplit:
		if v == nil {
			return
		}
		fn(v)
		if v.Primary != nil {
			walk(v.Primary, fn)
		}
		if v.Next != nil {
			walk(v.Next, fn)
		}
	case *Occupied:
		if v == nil {
			return
		}
		fn(v)
	default:
		panic(fmt.Sprintf("StructuralInvariantViolation: unknown node type %T", n))
	}
}
