package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/WoodBOM/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each part label's QR code.
type LabelInfo struct {
	PartName string `json:"name"`
	Material string `json:"material"`
	Length   int    `json:"length_mm"`
	Height   int    `json:"height_mm"`
	Width    int    `json:"width_mm"`
	Angle1   string `json:"angle1"`
	Angle2   string `json:"angle2"`
	Piece    int    `json:"piece"` // 1-based among identical parts
	Of       int    `json:"of"`
	Stock    string `json:"stock"`
	Board    int    `json:"board"` // 1-based within the stock group, 0 = not on a board
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF with one QR-coded label per physical part.
func ExportLabels(path string, rep model.Report) error {
	labels := CollectLabelInfos(rep)
	if len(labels) == 0 {
		return fmt.Errorf("no parts to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.PartName, err)
		}
	}

	return saveAtomic(path, pdf.OutputFileAndClose)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, seq int, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", seq)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	name := tr(fmt.Sprintf("%s %d/%d", info.PartName, info.Piece, info.Of))
	if pdf.GetStringWidth(name) > textW {
		for len(name) > 0 && pdf.GetStringWidth(name+"...") > textW {
			name = name[:len(name)-1]
		}
		name += "..."
	}
	pdf.CellFormat(textW, 4.5, name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d x %d mm", info.Length, info.Height, info.Width), "", 1, "L", false, 0, "")

	pdf.SetXY(textX, y+labelPadding+8.5)
	pdf.CellFormat(textW, 3.5, tr(fmt.Sprintf("%s  ends %s / %s", info.Material, info.Angle1, info.Angle2)), "", 1, "L", false, 0, "")

	if info.Board > 0 {
		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(100, 100, 100)
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.CellFormat(textW, 3, fmt.Sprintf("Board %d of %s", info.Board, info.Stock), "", 1, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos expands the parts list into one label per piece and
// assigns each piece to the first unclaimed cut of its length in the cutting
// plan of its stock group.
func CollectLabelInfos(rep model.Report) []LabelInfo {
	type slot struct {
		board  int
		length int
		used   bool
	}
	slots := map[model.StockKey][]slot{}
	for _, plan := range rep.Plans {
		for i, b := range plan.Boards {
			for _, c := range b.Cuts {
				slots[plan.Stock] = append(slots[plan.Stock], slot{board: i + 1, length: c})
			}
		}
	}

	var labels []LabelInfo
	for _, p := range rep.Parts {
		k := p.Key
		stock := model.StockKey{Material: k.Material, Height: k.Height, Width: k.Width}
		for n := 1; n <= p.Quantity; n++ {
			info := LabelInfo{
				PartName: k.Name,
				Material: k.Material,
				Length:   k.Length,
				Height:   k.Height,
				Width:    k.Width,
				Angle1:   k.Angle1,
				Angle2:   k.Angle2,
				Piece:    n,
				Of:       p.Quantity,
				Stock:    stock.String(),
			}
			group := slots[stock]
			for i := range group {
				if !group[i].used && group[i].length == k.Length {
					group[i].used = true
					info.Board = group[i].board
					break
				}
			}
			labels = append(labels, info)
		}
	}
	return labels
}
