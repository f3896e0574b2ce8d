package engine

import (
	"errors"
	"fmt"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/piwi3910/BoxPack/internal/model"
)

// packer is the contract both placement engines satisfy.
type packer interface {
	Insert(box model.Box) error
	LinearExtent() int
	Placements() []model.Placement
}

// Optimizer runs the packing driver: it validates and sorts boxes, feeds
// them to a placement engine and reads back the depth.
type Optimizer struct {
	Settings model.Settings

	// Logger receives a debug line per placement. Nil disables tracing.
	Logger *log.Logger
}

func New(settings model.Settings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Pack places boxes into a container of Settings.Width. Boxes wider than the
// container are returned in PackResult.Rejected instead of being inserted.
func (o *Optimizer) Pack(boxes []model.Box) (model.PackResult, error) {
	if o.Settings.Width <= 0 {
		return model.PackResult{}, fmt.Errorf("container width %d: %w", o.Settings.Width, model.ErrInvalidDimension)
	}
	if len(boxes) == 0 {
		return model.PackResult{}, model.ErrNoBoxes
	}

	var fit, rejected []model.Box
	for _, b := range boxes {
		if err := b.Validate(); err != nil {
			return model.PackResult{}, err
		}
		if b.Width > o.Settings.Width {
			o.debugf("rejecting %s: wider than container (%d)", b, o.Settings.Width)
			rejected = append(rejected, b)
			continue
		}
		fit = append(fit, b)
	}

	var (
		result model.PackResult
		err    error
	)
	switch o.Settings.Order {
	case model.OrderBest:
		result, err = o.packBestOrder(fit)
	case model.OrderGenetic:
		result, err = o.packGenetic(fit)
	case model.OrderAscending:
		result, err = o.packOrdered(sortByArea(fit, false), model.OrderAscending)
	default:
		result, err = o.packOrdered(sortByArea(fit, true), model.OrderDescending)
	}
	if err != nil {
		return model.PackResult{}, err
	}
	result.Rejected = append(result.Rejected, rejected...)
	return result, nil
}

// packBestOrder runs both area orders and keeps the shallower result.
// Descending wins ties.
func (o *Optimizer) packBestOrder(boxes []model.Box) (model.PackResult, error) {
	desc, err := o.packOrdered(sortByArea(boxes, true), model.OrderDescending)
	if err != nil {
		return model.PackResult{}, err
	}
	asc, err := o.packOrdered(sortByArea(boxes, false), model.OrderAscending)
	if err != nil {
		return model.PackResult{}, err
	}
	o.debugf("descending depth %d, ascending depth %d", desc.Depth, asc.Depth)
	if asc.Depth < desc.Depth {
		return asc, nil
	}
	return desc, nil
}

// packOrdered inserts boxes exactly in the given order.
func (o *Optimizer) packOrdered(boxes []model.Box, order model.Order) (model.PackResult, error) {
	p, err := o.newPacker()
	if err != nil {
		return model.PackResult{}, err
	}

	result := model.PackResult{
		Width:  o.Settings.Width,
		Order:  order,
		Engine: o.engineKind(),
	}
	for _, b := range boxes {
		if err := p.Insert(b); err != nil {
			if errors.Is(err, model.ErrRejectedBox) {
				result.Rejected = append(result.Rejected, b)
				continue
			}
			return model.PackResult{}, err
		}
	}
	result.Placements = p.Placements()
	result.Depth = p.LinearExtent()

	if o.Logger != nil {
		for _, pl := range result.Placements {
			o.debugf("placed %s at %s", pl.Box, pl.Rect().Origin)
		}
	}
	return result, nil
}

func (o *Optimizer) newPacker() (packer, error) {
	if o.engineKind() == model.EngineGrid {
		g, err := NewGridPacker(o.Settings.Width)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	t, err := NewTree(o.Settings.Width)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (o *Optimizer) engineKind() model.EngineKind {
	if o.Settings.Engine == model.EngineGrid {
		return model.EngineGrid
	}
	return model.EngineTree
}

func (o *Optimizer) debugf(format string, args ...any) {
	if o.Logger != nil {
		o.Logger.Debugf(format, args...)
	}
}

// sortByArea returns a copy of boxes sorted by area. The sort is stable, so
// boxes of equal area keep their input order.
func sortByArea(boxes []model.Box, descending bool) []model.Box {
	sorted := make([]model.Box, len(boxes))
	copy(sorted, boxes)
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return sorted[i].Area() > sorted[j].Area()
		}
		return sorted[i].Area() < sorted[j].Area()
	})
	return sorted
}
