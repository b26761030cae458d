package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Lines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")

	if err := ExportDXF(path, buildTestReport(t)); err != nil {
		t.Fatalf("ExportDXF: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("dxf.Open: %v", err)
	}

	lines := 0
	for _, e := range drawing.Entities() {
		if _, ok := e.(*entity.Line); ok {
			lines++
		}
	}
	// Pine: 1 board, 4 cuts. Oak: the oversize beam board with 1 cut, and a
	// rail board with 2 cuts. Every board adds 4 outline lines.
	if want := 3*4 + 4 + 1 + 2; lines != want {
		t.Errorf("lines = %d, want %d", lines, want)
	}
}

func TestExportDXF_NoPlans(t *testing.T) {
	if err := ExportDXF(filepath.Join(t.TempDir(), "x.dxf"), model.Report{}); err == nil {
		t.Error("expected error without cutting plans")
	}
}

func TestLayerName(t *testing.T) {
	tests := []struct {
		key  model.StockKey
		want string
	}{
		{model.StockKey{Material: "Pine", Height: 45, Width: 45}, "PINE_45X45"},
		{model.StockKey{Material: "Red Oak", Height: 90, Width: 20}, "RED_OAK_90X20"},
		{model.StockKey{Material: "Birch/Ply", Height: 300, Width: 18}, "BIRCH_PLY_300X18"},
	}
	for _, tt := range tests {
		if got := layerName(tt.key); got != tt.want {
			t.Errorf("layerName(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestBoardLength(t *testing.T) {
	if got := boardLength(model.Board{Used: 2896, StockLength: 3000}); got != 3000 {
		t.Errorf("boardLength = %d, want 3000", got)
	}
	if got := boardLength(model.Board{Used: 7004, StockLength: 6000}); got != 7004 {
		t.Errorf("oversize boardLength = %d, want 7004", got)
	}
}
