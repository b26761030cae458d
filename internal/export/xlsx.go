package export

import (
	"fmt"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/xuri/excelize/v2"
)

const (
	sheetParts    = "Parts"
	sheetShopping = "Shopping"
	sheetCutting  = "Cutting Plan"
)

// ExportXLSX writes the report as a workbook with parts, shopping and cutting
// plan sheets.
func ExportXLSX(path string, rep model.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetParts); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	for _, name := range []string{sheetShopping, sheetCutting} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#6D4C41"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create total style: %w", err)
	}

	// Parts
	parts := [][]interface{}{
		{"Part Name", "Material", "Qty", "Length (mm)", "Height (mm)", "Width (mm)", "Ang 1", "Ang 2", "Net Vol (m3)", "Net Cost"},
	}
	for _, p := range rep.Parts {
		k := p.Key
		parts = append(parts, []interface{}{
			k.Name, k.Material, p.Quantity, k.Length, k.Height, k.Width, k.Angle1, k.Angle2,
			p.Volume.Round(model.VolumePlaces).InexactFloat64(), p.Cost.Round(model.CostPlaces).InexactFloat64(),
		})
	}
	parts = append(parts, []interface{}{"", "", "", "", "", "", "", "", "NET TOTAL", rep.NetTotal.Round(model.CostPlaces).InexactFloat64()})
	if err := writeSheet(f, sheetParts, parts, []float64{24, 14, 6, 12, 12, 12, 8, 8, 14, 12}); err != nil {
		return err
	}

	// Shopping
	shopping := [][]interface{}{
		{"Qty", "Stock Length (mm)", "Material", "Height (mm)", "Width (mm)", "Board Vol (m3)", "Board Cost", "Note"},
	}
	for _, s := range rep.Shopping {
		note := ""
		if s.Oversize {
			note = "oversize part"
		}
		shopping = append(shopping, []interface{}{
			s.Quantity, s.StockLength, s.Stock.Material, s.Stock.Height, s.Stock.Width,
			s.Volume.Round(model.VolumePlaces).InexactFloat64(), s.Cost.Round(model.CostPlaces).InexactFloat64(), note,
		})
	}
	shopping = append(shopping, []interface{}{"", "", "", "", "", "TOTAL", rep.PurchaseTotal.Round(model.CostPlaces).InexactFloat64()})
	if err := writeSheet(f, sheetShopping, shopping, []float64{6, 18, 14, 12, 12, 14, 12, 16}); err != nil {
		return err
	}

	// Cutting plan
	cutting := [][]interface{}{
		{"Stock", "Board", "Stock Length (mm)", "Used (mm)", "Waste (mm)", "Cuts (mm)"},
	}
	for _, plan := range rep.Plans {
		for i, b := range plan.Boards {
			cutting = append(cutting, []interface{}{
				plan.Stock.String(), i + 1, b.StockLength, b.Used, b.Waste(), joinInts(b.Cuts),
			})
		}
	}
	if err := writeSheet(f, sheetCutting, cutting, []float64{20, 8, 18, 12, 12, 40}); err != nil {
		return err
	}

	for _, sheet := range []struct {
		name string
		cols int
		rows int
	}{
		{sheetParts, 10, len(parts)},
		{sheetShopping, 8, len(shopping)},
		{sheetCutting, 6, len(cutting)},
	} {
		last, _ := excelize.CoordinatesToCellName(sheet.cols, 1)
		if err := f.SetCellStyle(sheet.name, "A1", last, headerStyle); err != nil {
			return fmt.Errorf("style header %s: %w", sheet.name, err)
		}
		if sheet.name == sheetCutting {
			continue
		}
		first, _ := excelize.CoordinatesToCellName(1, sheet.rows)
		lastTotal, _ := excelize.CoordinatesToCellName(sheet.cols, sheet.rows)
		if err := f.SetCellStyle(sheet.name, first, lastTotal, totalStyle); err != nil {
			return fmt.Errorf("style total %s: %w", sheet.name, err)
		}
	}

	return saveAtomic(path, func(tmpPath string) error {
		if err := f.SaveAs(tmpPath); err != nil {
			return fmt.Errorf("save workbook: %w", err)
		}
		return nil
	})
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}, widths []float64) error {
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return fmt.Errorf("set col width %s: %w", col, err)
		}
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func joinInts(v []int) string {
	s := ""
	for i, n := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(n)
	}
	return s
}
