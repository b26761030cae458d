// Package importer reads part geometry into a model.Scene: JSON scene exports,
// STL meshes, and CSV or Excel cut lists.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/model"
	"github.com/xuri/excelize/v2"
)

// MaxQuantity is the largest quantity a single cut list row may ask for.
const MaxQuantity = 10000

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Scene    model.Scene
	Errors   []string
	Warnings []string
}

// BodyCount returns the number of bodies in the imported scene.
func (r ImportResult) BodyCount() int {
	n := len(r.Scene.RootBodies)
	for _, occ := range r.Scene.Occurrences {
		n += len(occ.Bodies)
	}
	return n
}

// Options controls how files without their own metadata are interpreted.
type Options struct {
	Material string  // material assigned to STL bodies
	STLScale float64 // STL units to cm; 0 means 0.1 (millimetres)
}

// ImportFile imports a scene, STL mesh or cut list, chosen by file extension.
func ImportFile(path string, opts Options) ImportResult {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		scene, err := LoadScene(path)
		if err != nil {
			return ImportResult{Errors: []string{err.Error()}}
		}
		return ImportResult{Scene: scene}
	case ".stl":
		scene, err := ImportSTL(path, opts.Material, opts.STLScale)
		if err != nil {
			return ImportResult{Errors: []string{err.Error()}}
		}
		return ImportResult{Scene: scene}
	case ".csv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	default:
		return ImportResult{Errors: []string{fmt.Sprintf("Unsupported file type %q", filepath.Ext(path))}}
	}
}

// ColumnMapping maps cut list column roles to their indices in the data.
type ColumnMapping struct {
	Name     int
	Material int
	Length   int
	Height   int
	Width    int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":     {"name", "part", "part name", "label", "description", "item"},
	"material": {"material", "mat", "species", "wood"},
	"length":   {"length", "len", "l", "gross length (mm)", "length (mm)"},
	"height":   {"height", "h", "depth", "height (mm)"},
	"width":    {"width", "w", "thickness", "t", "width (mm)"},
	"quantity": {"quantity", "qty", "count", "pcs", "pieces"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter. It tries comma,
// semicolon, tab, and pipe; the one giving the most consistent multi-column
// rows wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}
		if weighted := score*10 + firstCols; weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping. Without a
// recognizable header it returns the positional mapping
// Name, Material, Length, Height, Width, Quantity and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	found := map[string]int{}
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			if _, ok := found[role]; ok {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					found[role] = i
					break
				}
			}
		}
	}

	if len(found) == 0 {
		return ColumnMapping{Name: 0, Material: 1, Length: 2, Height: 3, Width: 4, Quantity: 5}, false
	}

	col := func(role string) int {
		if i, ok := found[role]; ok {
			return i
		}
		return -1
	}
	return ColumnMapping{
		Name:     col("name"),
		Material: col("material"),
		Length:   col("length"),
		Height:   col("height"),
		Width:    col("width"),
		Quantity: col("quantity"),
	}, true
}

func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseDimension(row []string, idx int, what, rowLabel string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, what)
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, what, s)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, what)
	}
	return v, ""
}

// parseRow turns one cut list row (millimetres) into an occurrence holding
// quantity identical board bodies.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, partCount int) (model.Occurrence, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Part %d", partCount+1)
	}

	var dims [3]float64
	for i, d := range []struct {
		idx  int
		what string
	}{{mapping.Length, "length"}, {mapping.Height, "height"}, {mapping.Width, "width"}} {
		v, errMsg := parseDimension(row, d.idx, d.what, rowLabel)
		if errMsg != "" {
			return model.Occurrence{}, errMsg, ""
		}
		dims[i] = v
	}

	qty := 1
	var warning string
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		n, err := strconv.Atoi(qtyStr)
		if err != nil || n <= 0 {
			return model.Occurrence{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		if n > MaxQuantity {
			return model.Occurrence{}, fmt.Sprintf("%s: Quantity %d exceeds the maximum of %d", rowLabel, n, MaxQuantity), ""
		}
		qty = n
	}

	material := getCell(row, mapping.Material)
	if material == "" {
		material = "Unknown"
		warning = fmt.Sprintf("%s: No material for '%s'", rowLabel, name)
	}

	occ := model.Occurrence{Name: name, Visible: true, Bodies: make([]model.SolidBody, 0, qty)}
	for i := 0; i < qty; i++ {
		occ.Bodies = append(occ.Bodies,
			model.NewBoardBody(fmt.Sprintf("%s %d", name, i+1), material, dims[0]/10, dims[1]/10, dims[2]/10))
	}
	return occ, "", warning
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports a cut list from a CSV file with an auto-detected delimiter.
func ImportCSV(path string) ImportResult {
	data, err := os.ReadFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open file: %v", err)}}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	res := ImportCSVFromReader(bytes.NewReader(data), delimiter)
	res.Warnings = append(warnings, res.Warnings...)
	res.Scene.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return res
}

// ImportCSVFromReader imports a cut list from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	if len(records) == 0 {
		return ImportResult{Errors: []string{"File is empty"}}
	}
	return importFromRows(records, "Line")
}

// ImportExcel imports a cut list from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ImportResult{Errors: []string{"Excel file has no sheets"}}
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read Excel data: %v", err)}}
	}
	if len(rows) == 0 {
		return ImportResult{Errors: []string{"Sheet is empty"}}
	}

	res := importFromRows(rows, "Row")
	res.Scene.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return res
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string) ImportResult {
	var result ImportResult

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		var missing []string
		for _, c := range []struct {
			idx  int
			name string
		}{{mapping.Length, "Length"}, {mapping.Height, "Height"}, {mapping.Width, "Width"}} {
			if c.idx == -1 {
				missing = append(missing, c.name)
			}
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if _, err := strconv.ParseFloat(getCell(rows[0], mapping.Length), 64); err != nil {
		// unrecognized header, positional mapping
		startRow = 1
		result.Warnings = append(result.Warnings, "Skipped unrecognized header row")
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		occ, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Scene.Occurrences))
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
		result.Scene.Occurrences = append(result.Scene.Occurrences, occ)
	}

	return result
}
