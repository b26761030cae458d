package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/WoodBOM/internal/model"
)

// partColor represents an RGB color for a cut on a board diagram.
type partColor struct {
	R, G, B int
}

var partColors = []partColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	boardHeight  = 8.0
	boardGap     = 6.0
	boardLabelW  = 32.0
)

// ExportPDF generates the cost report as PDF: the net parts list, the
// shopping list with totals, and one cutting diagram per stock group.
func ExportPDF(path string, rep model.Report) error {
	if len(rep.Parts) == 0 {
		return fmt.Errorf("no parts to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(rep.Name, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	y := renderTitle(pdf, "Project Cost Report", fmt.Sprintf("Unit price: %.2f %s/m3", rep.PricePerM3, rep.Currency))
	renderPartsTable(pdf, tr, rep, y)

	pdf.AddPage()
	y = renderTitle(pdf, "Shopping List", fmt.Sprintf("%d boards", rep.TotalBoards()))
	y = renderShoppingTable(pdf, rep, y)
	renderNotes(pdf, tr, rep, y)

	if len(rep.Plans) > 0 {
		pdf.AddPage()
		renderCuttingPlans(pdf, rep)
	}

	return writeAtomic(path, func(w io.Writer) error {
		return pdf.Output(w)
	})
}

// renderTitle draws a page title with a subtitle line and returns the next y.
func renderTitle(pdf *fpdf.Fpdf, title, subtitle string) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight-2)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, subtitle, "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+4, pageWidth-marginRight, marginTop+headerHeight+4)

	renderFooter(pdf)
	return marginTop + headerHeight + 8
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4,
		fmt.Sprintf("Generated by WoodBOM - page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// table draws rows under a header, starting new pages as needed, and returns
// the y below the last row.
func table(pdf *fpdf.Fpdf, y float64, widths []float64, headers []string, rows [][]string) float64 {
	header := func(y float64) float64 {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		x := marginLeft
		for i, h := range headers {
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
			x += widths[i]
		}
		return y + rowHeight
	}

	y = header(y)
	pdf.SetFont("Helvetica", "", 9)
	for i, row := range rows {
		if y+rowHeight > pageHeight-marginBottom-5 {
			pdf.AddPage()
			renderFooter(pdf)
			y = header(marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		x := marginLeft
		for j, cell := range row {
			align := "C"
			if j == 0 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(widths[j], rowHeight, cell, "1", 0, align, true, 0, "")
			x += widths[j]
		}
		y += rowHeight
	}
	return y
}

// totalLine right-aligns a bold label and value below a table.
func totalLine(pdf *fpdf.Fpdf, y float64, label, value string) float64 {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetXY(pageWidth-marginRight-110, y+2)
	pdf.CellFormat(70, rowHeight, label, "", 0, "R", false, 0, "")
	pdf.CellFormat(40, rowHeight, value, "", 0, "R", false, 0, "")
	return y + rowHeight + 4
}

func renderPartsTable(pdf *fpdf.Fpdf, tr func(string) string, rep model.Report, y float64) float64 {
	widths := []float64{56, 30, 14, 26, 20, 20, 20, 20, 30, 31}
	headers := []string{"Part Name", "Material", "Qty", "Length (mm)", "Height", "Width", "Ang 1", "Ang 2", "Net Vol (m3)", "Net Cost"}

	rows := make([][]string, 0, len(rep.Parts))
	for _, p := range rep.Parts {
		k := p.Key
		rows = append(rows, []string{
			tr(k.Name), tr(k.Material), fmt.Sprint(p.Quantity),
			fmt.Sprint(k.Length), fmt.Sprint(k.Height), fmt.Sprint(k.Width),
			tr(k.Angle1), tr(k.Angle2),
			p.Volume.StringFixed(model.VolumePlaces), p.Cost.StringFixed(model.CostPlaces),
		})
	}
	y = table(pdf, y, widths, headers, rows)
	return totalLine(pdf, y, "NET TOTAL:", rep.NetTotal.StringFixed(model.CostPlaces)+" "+rep.Currency)
}

func renderShoppingTable(pdf *fpdf.Fpdf, rep model.Report, y float64) float64 {
	widths := []float64{16, 44, 40, 30, 30, 40, 40, 27}
	headers := []string{"Qty", "Stock Length (mm)", "Material", "Height", "Width", "Board Vol (m3)", "Board Cost", "Note"}

	rows := make([][]string, 0, len(rep.Shopping))
	for _, s := range rep.Shopping {
		note := ""
		if s.Oversize {
			note = "OVERSIZE"
		}
		rows = append(rows, []string{
			fmt.Sprint(s.Quantity), fmt.Sprint(s.StockLength), s.Stock.Material,
			fmt.Sprint(s.Stock.Height), fmt.Sprint(s.Stock.Width),
			s.Volume.StringFixed(model.VolumePlaces), s.Cost.StringFixed(model.CostPlaces), note,
		})
	}
	y = table(pdf, y, widths, headers, rows)
	return totalLine(pdf, y, "TOTAL PURCHASE PRICE:", rep.PurchaseTotal.StringFixed(model.CostPlaces)+" "+rep.Currency)
}

// renderNotes lists warnings, skipped bodies and reusable offcuts.
func renderNotes(pdf *fpdf.Fpdf, tr func(string) string, rep model.Report, y float64) {
	section := func(title string, r, g, b int, lines []string) {
		if len(lines) == 0 {
			return
		}
		if y > pageHeight-marginBottom-20 {
			pdf.AddPage()
			renderFooter(pdf)
			y = marginTop
		}
		y += 4
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(r, g, b)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, title, "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, line := range lines {
			if y > pageHeight-marginBottom-6 {
				pdf.AddPage()
				renderFooter(pdf)
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(250, 5, "- "+tr(line), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	section("WARNING: Oversize Parts", 200, 0, 0, rep.Warnings)
	section("Skipped Bodies", 150, 100, 0, rep.Skipped)

	var offcuts []string
	for _, o := range rep.Offcuts {
		offcuts = append(offcuts, fmt.Sprintf("%s: %d mm left on board %d", o.Stock, o.Length, o.BoardIndex+1))
	}
	section("Reusable Offcuts", 0, 100, 0, offcuts)
}

// renderCuttingPlans draws every board as a bar with its cuts, kerf and waste.
func renderCuttingPlans(pdf *fpdf.Fpdf, rep model.Report) {
	y := renderTitle(pdf, "Cutting Plan", "Boards drawn to scale; hatched area is waste")

	longest := 0
	for _, plan := range rep.Plans {
		for _, b := range plan.Boards {
			longest = max(longest, b.StockLength, b.Used)
		}
	}
	if longest == 0 {
		return
	}
	drawWidth := pageWidth - marginLeft - marginRight - boardLabelW
	scale := drawWidth / float64(longest)

	for _, plan := range rep.Plans {
		if y+headerHeight+boardHeight > pageHeight-marginBottom-5 {
			pdf.AddPage()
			renderFooter(pdf)
			y = marginTop
		}
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(150, 7, fmt.Sprintf("%s mm (%d boards)", plan.Stock, len(plan.Boards)), "", 0, "L", false, 0, "")
		y += 9

		for i, b := range plan.Boards {
			if y+boardHeight > pageHeight-marginBottom-5 {
				pdf.AddPage()
				renderFooter(pdf)
				y = marginTop
			}
			drawBoard(pdf, b, i+1, y, scale)
			y += boardHeight + boardGap
		}
		y += 2
	}
}

func drawBoard(pdf *fpdf.Fpdf, b model.Board, num int, y, scale float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y+1)
	label := fmt.Sprintf("#%d  %d mm", num, b.StockLength)
	if b.Oversize {
		pdf.SetTextColor(200, 0, 0)
		label += " !"
	}
	pdf.CellFormat(boardLabelW, boardHeight-2, label, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	x0 := marginLeft + boardLabelW
	stockW := float64(b.StockLength) * scale

	// board background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x0, y, stockW, boardHeight, "FD")

	kerf := 0.0
	if len(b.Cuts) > 0 {
		sum := 0
		for _, c := range b.Cuts {
			sum += c
		}
		kerf = float64(b.Used-sum) / float64(len(b.Cuts))
	}

	x := x0
	for i, c := range b.Cuts {
		col := partColors[i%len(partColors)]
		w := float64(c) * scale
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.Rect(x, y, w, boardHeight, "FD")

		text := fmt.Sprint(c)
		pdf.SetFont("Helvetica", "", labelFontSize(w))
		if tw := pdf.GetStringWidth(text); tw < w-1 {
			pdf.SetXY(x+(w-tw)/2, y+1)
			pdf.CellFormat(tw, boardHeight-2, text, "", 0, "C", false, 0, "")
		}
		x += w + kerf*scale
	}

	if waste := float64(b.Waste()) * scale; waste > 0.5 {
		drawHatchPattern(pdf, x0+stockW-waste, y, waste, boardHeight)
	}
}

// drawHatchPattern draws diagonal lines inside a rectangle to mark waste.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(120, 90, 60)
	pdf.SetLineWidth(0.15)

	spacing := 2.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// labelFontSize returns a font size that fits a cut of width w mm.
func labelFontSize(w float64) float64 {
	switch {
	case w > 40:
		return 8
	case w > 20:
		return 7
	default:
		return 6
	}
}
