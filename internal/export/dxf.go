package export

import (
	"fmt"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
)

// DXF layout, in drawing units (mm).
const (
	dxfBoardGap  = 60.0
	dxfGroupGap  = 200.0
	dxfTextH     = 25.0
	dxfMinHeight = 20.0
)

var layerColors = []color.ColorNumber{
	color.Green, color.Blue, color.Yellow, color.Magenta, color.Cyan, color.Red,
}

// ExportDXF draws every cutting plan at 1:1 scale for import into CAD or a
// panel saw. Each stock group gets its own layer holding the board outlines,
// one line per saw cut, and a text label per board.
func ExportDXF(path string, rep model.Report) error {
	if len(rep.Plans) == 0 {
		return fmt.Errorf("no cutting plans to export")
	}

	d := dxf.NewDrawing()
	y := 0.0
	for gi, plan := range rep.Plans {
		layer := layerName(plan.Stock)
		if _, err := d.AddLayer(layer, layerColors[gi%len(layerColors)], dxf.DefaultLineType, true); err != nil {
			// keys differing only in case share a layer
			if err := d.ChangeLayer(layer); err != nil {
				return fmt.Errorf("failed to add layer %s: %w", layer, err)
			}
		}

		h := float64(plan.Stock.Height)
		if h < dxfMinHeight {
			h = dxfMinHeight
		}

		if _, err := d.Text(plan.Stock.String(), 0, y+dxfTextH, 0, dxfTextH); err != nil {
			return fmt.Errorf("failed to write group label: %w", err)
		}
		y -= dxfTextH

		for bi, b := range plan.Boards {
			y -= h
			if err := drawDXFBoard(d, b, y, h); err != nil {
				return fmt.Errorf("failed to draw board %d of %s: %w", bi+1, plan.Stock, err)
			}
			label := fmt.Sprintf("#%d  %d mm", bi+1, b.StockLength)
			if b.Oversize {
				label += "  OVERSIZE"
			}
			if _, err := d.Text(label, float64(boardLength(b))+dxfTextH, y, 0, dxfTextH); err != nil {
				return fmt.Errorf("failed to write board label: %w", err)
			}
			y -= dxfBoardGap
		}
		y -= dxfGroupGap
	}

	return saveAtomic(path, d.SaveAs)
}

// drawDXFBoard draws the board outline with its lower left corner at (0, y)
// and a line after every cut. Each cut is followed by its kerf.
func drawDXFBoard(d *drawing.Drawing, b model.Board, y, h float64) error {
	w := float64(boardLength(b))
	outline := [][4]float64{
		{0, y, w, y},
		{w, y, w, y + h},
		{w, y + h, 0, y + h},
		{0, y + h, 0, y},
	}
	for _, l := range outline {
		if _, err := d.Line(l[0], l[1], 0, l[2], l[3], 0); err != nil {
			return err
		}
	}

	kerf := 0
	if len(b.Cuts) > 0 {
		sum := 0
		for _, c := range b.Cuts {
			sum += c
		}
		kerf = (b.Used - sum) / len(b.Cuts)
	}

	x := 0
	for _, c := range b.Cuts {
		x += c
		if x >= boardLength(b) {
			break
		}
		if _, err := d.Line(float64(x), y, 0, float64(x), y+h, 0); err != nil {
			return err
		}
		x += kerf
	}
	return nil
}

// boardLength is the drawn length: the stock bought, or the used length of an
// oversize board.
func boardLength(b model.Board) int {
	if b.Used > b.StockLength {
		return b.Used
	}
	return b.StockLength
}

// layerName turns a stock key into a DXF-safe layer name, e.g. "PINE_45X45".
func layerName(k model.StockKey) string {
	name := strings.ToUpper(fmt.Sprintf("%s_%dX%d", k.Material, k.Height, k.Width))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}
