package export

import (
	"testing"

	"github.com/piwi3910/WoodBOM/internal/bom"
	"github.com/piwi3910/WoodBOM/internal/model"
	"go.uber.org/zap"
)

// buildTestReport returns a report with four pine legs, two oak rails and one
// oak beam too long for any board.
func buildTestReport(t *testing.T) model.Report {
	t.Helper()

	b := bom.NewBuilder(model.DefaultSettings(), nil, zap.NewNop())
	add := func(name, material string, l, h, w float64) {
		if _, err := b.Add(model.NewBoardBody("Body1", material, l, h, w), name); err != nil {
			t.Fatalf("Add(%s): %v", name, err)
		}
	}
	for _, name := range []string{"Leg:1", "Leg:2", "Leg:3", "Leg:4"} {
		add(name, "Pine", 72, 4.5, 4.5)
	}
	add("Rail:1", "Oak", 120, 9, 2)
	add("Rail:2", "Oak", 120, 9, 2)
	add("Beam:1", "Oak", 700, 9, 2)

	rep, err := b.Report()
	if err != nil {
		t.Fatalf("Report: %v", err)
	}
	rep.Name = "Table"
	return rep
}
