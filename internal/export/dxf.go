package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/BoxPack/internal/model"
)

// DXF layer names.
const (
	LayerContainer = "CONTAINER"
	LayerBoxes     = "BOXES"
	LayerLabels    = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing: the container outline as
// LINEs, each box as a closed LWPOLYLINE and its label as TEXT. CAD Y
// grows upward, so row 0 of the container is drawn at the top.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingToExport
	}

	d := dxf.NewDrawing()
	if err := drawContainer(d, result.Width, result.Depth); err != nil {
		return err
	}
	if err := drawBoxes(d, result); err != nil {
		return err
	}
	return d.SaveAs(path)
}

func drawContainer(d *drawing.Drawing, width, depth int) error {
	if _, err := d.AddLayer(LayerContainer, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerContainer, err)
	}

	w, h := float64(width), float64(depth)
	corners := [][2]float64{{0, 0}, {w, 0}, {w, h}, {0, h}}
	for i, c := range corners {
		next := corners[(i+1)%len(corners)]
		if _, err := d.Line(c[0], c[1], 0, next[0], next[1], 0); err != nil {
			return fmt.Errorf("container outline: %w", err)
		}
	}
	return nil
}

func drawBoxes(d *drawing.Drawing, result model.PackResult) error {
	if _, err := d.AddLayer(LayerBoxes, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerBoxes, err)
	}
	for _, p := range result.Placements {
		x0, y0, x1, y1 := cadRect(p, result.Depth)
		if _, err := d.LwPolyline(true,
			[]float64{x0, y0}, []float64{x1, y0}, []float64{x1, y1}, []float64{x0, y1},
		); err != nil {
			return fmt.Errorf("box %s: %w", p.Box, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, color.Yellow, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer %s: %w", LayerLabels, err)
	}
	for _, p := range result.Placements {
		if p.Box.Label == "" {
			continue
		}
		x0, y0, _, y1 := cadRect(p, result.Depth)
		height := textHeight(p.Box)
		if _, err := d.Text(p.Box.Label, x0+height/2, (y0+y1)/2, 0, height); err != nil {
			return fmt.Errorf("label %s: %w", p.Box, err)
		}
	}
	return nil
}

// cadRect converts a placement to CAD coordinates with Y flipped.
func cadRect(p model.Placement, depth int) (x0, y0, x1, y1 float64) {
	r := p.Rect()
	x0 = float64(r.Origin.X)
	x1 = float64(r.RightEdge())
	y0 = float64(depth - r.BottomEdge())
	y1 = float64(depth - r.Origin.Y)
	return x0, y0, x1, y1
}

func textHeight(b model.Box) float64 {
	m := b.Height
	if b.Width < m {
		m = b.Width
	}
	h := float64(m) / 4
	if h < 1 {
		h = 1
	}
	return h
}
