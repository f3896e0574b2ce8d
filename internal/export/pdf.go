// Package export writes packing results to PDF layouts, printable box
// labels and DXF drawings.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/BoxPack/internal/model"
)

// ErrNothingToExport is returned when a result has no placed boxes.
var ErrNothingToExport = errors.New("no placed boxes to export")

// boxColor represents an RGB fill for a placed box.
type boxColor struct {
	R, G, B int
}

var boxColors = []boxColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants in mm. Width and height are swapped for
// landscape pages.
const (
	a4Short      = 210.0
	a4Long       = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
	tableRowH    = 6.0
)

type page struct {
	w, h float64
}

// ExportPDF writes a PDF with the container layout on the first page and
// a summary with the placement table after it.
func ExportPDF(path string, result model.PackResult) error {
	if len(result.Placements) == 0 {
		return ErrNothingToExport
	}

	orientation, pg := "L", page{w: a4Long, h: a4Short}
	if result.Depth > result.Width {
		orientation, pg = "P", page{w: a4Short, h: a4Long}
	}

	pdf := fpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, pg, result)

	pdf.AddPage()
	renderSummaryPage(pdf, pg, result)

	return pdf.OutputFileAndClose(path)
}

// layoutScale returns the mm-per-unit scale that fits the container into
// the drawing area of a page.
func layoutScale(pg page, width, depth int) float64 {
	drawWidth := pg.w - marginLeft - marginRight
	drawHeight := pg.h - drawAreaTop - marginBottom - legendHeight
	if width <= 0 || depth <= 0 {
		return 0
	}
	return math.Min(drawWidth/float64(width), drawHeight/float64(depth))
}

func renderLayoutPage(pdf *fpdf.Fpdf, pg page, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Container %d wide, depth %d", result.Width, result.Depth)
	pdf.CellFormat(pg.w-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Boxes: %d | Rejected: %d | Order: %s | Engine: %s | Efficiency: %.1f%%",
		len(result.Placements), len(result.Rejected), result.Order, result.Engine, result.Efficiency())
	pdf.CellFormat(pg.w-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	scale := layoutScale(pg, result.Width, result.Depth)
	canvasW := float64(result.Width) * scale
	canvasH := float64(result.Depth) * scale
	drawWidth := pg.w - marginLeft - marginRight

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Container background
	pdf.SetFillColor(235, 235, 235)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range result.Placements {
		col := boxColors[i%len(boxColors)]
		pw := float64(p.Box.Width) * scale
		ph := float64(p.Box.Height) * scale
		px := offsetX + float64(p.X)*scale
		py := offsetY + float64(p.Y)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Only label rectangles large enough to hold text.
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := p.Box.Label
			dims := fmt.Sprintf("%dx%d", p.Box.Height, p.Box.Width)
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, result, offsetX, offsetY, canvasW, canvasH)
}

// drawDimensionAnnotations labels the container width below the layout and
// the depth beside it.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.PackResult, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("width %d", result.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	depthLabel := fmt.Sprintf("depth %d", result.Depth)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	dLabelW := pdf.GetStringWidth(depthLabel)
	pdf.SetXY(offsetX-3-dLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(dLabelW, 4, depthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func renderSummaryPage(pdf *fpdf.Fpdf, pg page, result model.PackResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pg.w-marginLeft-marginRight, 10, "Packing Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pg.w-marginRight, marginTop+12)

	y := marginTop + 18

	summaryItems := []struct {
		label string
		value string
	}{
		{"Container Width", fmt.Sprintf("%d", result.Width)},
		{"Packed Depth", fmt.Sprintf("%d", result.Depth)},
		{"Boxes Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Boxes Rejected", fmt.Sprintf("%d", len(result.Rejected))},
		{"Used / Total Area", fmt.Sprintf("%d / %d", result.UsedArea(), result.TotalArea())},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 60, 35, 35, 35}
	headers := []string{"#", "Box", "Height x Width", "X", "Y"}
	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		xPos := marginLeft
		for i, header := range headers {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[i], tableRowH, header, "1", 0, "C", true, 0, "")
			xPos += colWidths[i]
		}
		y += tableRowH
		pdf.SetFont("Helvetica", "", 9)
	}
	drawHeader()

	for i, p := range result.Placements {
		if y+tableRowH > pg.h-marginBottom {
			pdf.AddPage()
			y = marginTop
			drawHeader()
		}

		rowData := []string{
			fmt.Sprintf("%d", i+1),
			p.Box.Label,
			fmt.Sprintf("%d x %d", p.Box.Height, p.Box.Width),
			fmt.Sprintf("%d", p.X),
			fmt.Sprintf("%d", p.Y),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos := marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], tableRowH, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += tableRowH
	}

	if len(result.Rejected) > 0 {
		y += 8
		if y+8+5*float64(len(result.Rejected)) > pg.h-marginBottom {
			pdf.AddPage()
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Rejected Boxes", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, b := range result.Rejected {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %d x %d (wider than container)", b.Label, b.Height, b.Width)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pg.h-marginBottom)
	pdf.CellFormat(pg.w-marginLeft-marginRight, 4, "Generated by BoxPack", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
