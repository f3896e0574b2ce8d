package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/BoxPack/internal/engine"
	"github.com/piwi3910/BoxPack/internal/model"
)

const (
	previewCols = 64
	previewRows = 32
	emptyCell   = '.'
)

const boxGlyphs = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// boxGlyph returns the preview character for the i-th placement.
func boxGlyph(i int) rune {
	return rune(boxGlyphs[i%len(boxGlyphs)])
}

// layoutGrid draws the packed container as text, one rune per cell. The
// container is scaled down uniformly until it is at most maxCols wide;
// rows past maxRows are cut and reported by the second return value.
func layoutGrid(result model.PackResult, maxCols, maxRows int) ([]string, bool) {
	if result.Width <= 0 || result.Depth <= 0 {
		return nil, false
	}

	scale := (result.Width + maxCols - 1) / maxCols
	cols := (result.Width + scale - 1) / scale
	rows := (result.Depth + scale - 1) / scale
	truncated := rows > maxRows
	if truncated {
		rows = maxRows
	}

	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(string(emptyCell), cols))
	}

	for i, p := range result.Placements {
		r := p.Rect()
		glyph := boxGlyph(i)
		for cy := r.Origin.Y / scale; cy < rows && cy*scale < r.BottomEdge(); cy++ {
			for cx := r.Origin.X / scale; cx < cols && cx*scale < r.RightEdge(); cx++ {
				if cells[cy][cx] == emptyCell {
					cells[cy][cx] = glyph
				}
			}
		}
	}

	lines := make([]string, rows)
	for y, row := range cells {
		lines[y] = string(row)
	}
	return lines, truncated
}

// printPreview renders the layout grid in a bordered panel.
func printPreview(w io.Writer, result model.PackResult) {
	lines, truncated := layoutGrid(result, previewCols, previewRows)
	if len(lines) == 0 {
		return
	}
	body := strings.Join(lines, "\n")
	if truncated {
		body += "\n" + StyleDim.Render(fmt.Sprintf("… %d more depth units", result.Depth-previewRows))
	}
	fmt.Fprintln(w, stylePanel.Render(body))
}

// printSummary prints the headline numbers of a packing result.
func printSummary(w io.Writer, result model.PackResult) {
	printKeyValue(w, "Width", fmt.Sprintf("%d", result.Width))
	printKeyValue(w, "Depth", StyleNumber.Render(fmt.Sprintf("%d", result.Depth)))
	printKeyValue(w, "Boxes", fmt.Sprintf("%d placed, %d rejected", len(result.Placements), len(result.Rejected)))
	printKeyValue(w, "Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency()))
	printKeyValue(w, "Order", string(result.Order))
	printKeyValue(w, "Engine", string(result.Engine))
}

// printPlacements lists every placement with its preview glyph.
func printPlacements(w io.Writer, result model.PackResult) {
	rows := make([][]string, 0, len(result.Placements))
	for i, p := range result.Placements {
		rows = append(rows, []string{
			string(boxGlyph(i)),
			p.Box.Label,
			fmt.Sprintf("%dx%d", p.Box.Height, p.Box.Width),
			fmt.Sprintf("%d", p.X),
			fmt.Sprintf("%d", p.Y),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Box", "HxW", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}

// printComparison prints one row per scenario and marks the shallowest.
func printComparison(w io.Writer, results []engine.ComparisonResult) {
	best := engine.Best(results)

	rows := make([][]string, 0, len(results))
	for i, r := range results {
		mark := ""
		if i == best {
			mark = iconSuccess
		}
		depth, efficiency := "error", "-"
		if r.Err == nil {
			depth = fmt.Sprintf("%d", r.Depth)
			efficiency = fmt.Sprintf("%.1f%%", r.Efficiency)
		}
		rows = append(rows, []string{
			mark,
			r.Scenario.Name,
			string(r.Scenario.Settings.Order),
			string(r.Scenario.Settings.Engine),
			depth,
			efficiency,
			fmt.Sprintf("%d", r.RejectedCount),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Scenario", "Order", "Engine", "Depth", "Efficiency", "Rejected").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row == best {
				return styleBest
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w, t.Render())
}
