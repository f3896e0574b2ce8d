package export

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestExportDXF_Entities(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.dxf")
	if err := ExportDXF(path, buildTestResult()); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}
	assertNonEmptyFile(t, path)

	d, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("failed to reopen DXF: %v", err)
	}

	var lines, polylines, texts int
	for _, e := range d.Entities() {
		switch e.(type) {
		case *entity.Line:
			lines++
		case *entity.LwPolyline:
			polylines++
		case *entity.Text:
			texts++
		}
	}

	if lines != 4 {
		t.Errorf("expected a 4-line container outline, got %d lines", lines)
	}
	if polylines != 3 {
		t.Errorf("expected 3 box polylines, got %d", polylines)
	}
	if texts != 3 {
		t.Errorf("expected 3 labels, got %d", texts)
	}
}

func TestExportDXF_NoPlacements(t *testing.T) {
	err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), model.PackResult{Width: 5})
	if !errors.Is(err, ErrNothingToExport) {
		t.Errorf("expected ErrNothingToExport, got %v", err)
	}
}

func TestCadRect_FlipsY(t *testing.T) {
	p := model.Placement{Box: model.Box{Height: 36, Width: 36}, X: 48, Y: 0}

	x0, y0, x1, y1 := cadRect(p, 72)
	if x0 != 48 || x1 != 84 {
		t.Errorf("unexpected x range %v..%v", x0, x1)
	}
	if y0 != 36 || y1 != 72 {
		t.Errorf("expected top row at y 36..72, got %v..%v", y0, y1)
	}
}

func TestTextHeight(t *testing.T) {
	if got := textHeight(model.Box{Height: 40, Width: 8}); got != 2 {
		t.Errorf("expected 2, got %v", got)
	}
	if got := textHeight(model.Box{Height: 2, Width: 2}); got != 1 {
		t.Errorf("expected minimum of 1, got %v", got)
	}
}
