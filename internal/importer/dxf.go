package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BoxPack/internal/model"
)

// ImportDXF imports boxes from a DXF file. Each LWPOLYLINE becomes one box
// sized by its bounding box, rounded to whole units. Other entities are
// skipped with a warning.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	skipped := 0
	for _, ent := range entities {
		lw, ok := ent.(*entity.LwPolyline)
		if !ok {
			skipped++
			continue
		}
		if len(lw.Vertices) < 3 {
			result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			continue
		}

		width, height := polylineExtent(lw.Vertices)
		if width < 1 || height < 1 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%d x %d)", height, width))
			continue
		}

		b, err := model.NewBox(fmt.Sprintf("DXF Box %d", len(result.Boxes)+1), height, width)
		if err != nil {
			result.Errors = append(result.Errors, err.Error())
			continue
		}
		result.Boxes = append(result.Boxes, b)
	}

	if skipped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Skipped %d non-polyline entities", skipped))
	}
	if len(result.Boxes) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No closed polylines found in DXF file")
	}

	return result
}

// polylineExtent returns the rounded bounding-box width and height of a
// vertex list.
func polylineExtent(vertices [][]float64) (width, height int) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, v := range vertices {
		if len(v) < 2 {
			continue
		}
		minX = math.Min(minX, v[0])
		maxX = math.Max(maxX, v[0])
		minY = math.Min(minY, v[1])
		maxY = math.Max(maxY, v[1])
	}
	if math.IsInf(minX, 1) {
		return 0, 0
	}
	return int(math.Round(maxX - minX)), int(math.Round(maxY - minY))
}
