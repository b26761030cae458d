package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// ExportCSV writes the two-table cost report as CSV.
func ExportCSV(path string, rep model.Report) error {
	return writeAtomic(path, func(w io.Writer) error {
		return WriteCSV(w, rep)
	})
}

// WriteCSV writes the net parts list followed by the shopping list.
func WriteCSV(w io.Writer, rep model.Report) error {
	cw := csv.NewWriter(w)
	itoa := strconv.Itoa

	rows := [][]string{
		{"Project Cost Report", "", "", "", "", "", "", "", "", ""},
		{fmt.Sprintf("Unit Price Used (%s/m3):", rep.Currency), strconv.FormatFloat(rep.PricePerM3, 'f', 1, 64), "", "", "", "", "", "", "", ""},
		{},
		{"--- 1. NET PARTS LIST ---"},
		{"Part Name", "Material", "Qty", "Gross Length (mm)", "Height", "Width", "Ang 1", "Ang 2", "Net Vol (m3)", "Net Cost"},
	}
	for _, p := range rep.Parts {
		k := p.Key
		rows = append(rows, []string{
			k.Name, k.Material, itoa(p.Quantity), itoa(k.Length), itoa(k.Height), itoa(k.Width), k.Angle1, k.Angle2,
			p.Volume.StringFixed(model.VolumePlaces), p.Cost.StringFixed(model.CostPlaces),
		})
	}
	rows = append(rows,
		[]string{"", "", "", "", "", "", "", "", "NET TOTAL:", rep.NetTotal.StringFixed(model.CostPlaces)},
		[]string{},
		[]string{},
		[]string{"--- 2. SHOPPING LIST ---"},
		[]string{"Qty", "Stock Length to Buy (mm)", "Material", "Height", "Width", "Board Vol (m3)", "Board Cost"},
	)
	for _, s := range rep.Shopping {
		rows = append(rows, []string{
			itoa(s.Quantity), itoa(s.StockLength), s.Stock.Material, itoa(s.Stock.Height), itoa(s.Stock.Width),
			s.Volume.StringFixed(model.VolumePlaces), s.Cost.StringFixed(model.CostPlaces),
		})
	}
	rows = append(rows,
		[]string{},
		[]string{"", "", "", "", "", "", "TOTAL PURCHASE PRICE:", rep.PurchaseTotal.StringFixed(model.CostPlaces)},
	)

	if len(rep.Warnings) > 0 {
		rows = append(rows, []string{}, []string{"--- WARNINGS ---"})
		for _, w := range rep.Warnings {
			rows = append(rows, []string{w})
		}
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}
	return nil
}
