// Package export renders a model.Report as CSV, Excel, PDF, part labels and
// DXF cutting diagrams.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/WoodBOM/internal/model"
)

// Output formats accepted by ExportAll.
const (
	FormatCSV    = "csv"
	FormatXLSX   = "xlsx"
	FormatPDF    = "pdf"
	FormatLabels = "labels"
	FormatDXF    = "dxf"
)

// Formats lists every supported output format.
var Formats = []string{FormatCSV, FormatXLSX, FormatPDF, FormatLabels, FormatDXF}

// FileName returns the file name used for a format, e.g. "Report.csv" or
// "Report_labels.pdf".
func FileName(base, format string) (string, error) {
	switch format {
	case FormatCSV, FormatXLSX, FormatPDF, FormatDXF:
		return base + "." + format, nil
	case FormatLabels:
		return base + "_labels.pdf", nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}

// ExportAll writes the report in every requested format into dir and returns
// the written paths. Every format is rendered to a temporary file first and
// the set is moved into place only when all of them succeed. If a move fails,
// files replaced so far are restored, so a failed call leaves dir as it was.
func ExportAll(dir, base string, formats []string, rep model.Report) ([]string, error) {
	paths := make([]string, len(formats))
	for i, format := range formats {
		name, err := FileName(base, strings.ToLower(format))
		if err != nil {
			return nil, err
		}
		paths[i] = filepath.Join(dir, name)
	}

	staged := make([]string, 0, len(formats))
	for i, format := range formats {
		tmpPath, err := tempPath(paths[i])
		if err == nil {
			staged = append(staged, tmpPath)
			err = exportFormat(strings.ToLower(format), tmpPath, rep)
		}
		if err != nil {
			removeAll(staged)
			return nil, fmt.Errorf("failed to export %s: %w", format, err)
		}
	}

	if err := commitStaged(staged, paths); err != nil {
		return nil, err
	}
	return paths, nil
}

func exportFormat(format, path string, rep model.Report) error {
	switch format {
	case FormatCSV:
		return ExportCSV(path, rep)
	case FormatXLSX:
		return ExportXLSX(path, rep)
	case FormatPDF:
		return ExportPDF(path, rep)
	case FormatLabels:
		return ExportLabels(path, rep)
	case FormatDXF:
		return ExportDXF(path, rep)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// commitStaged renames staged[i] over paths[i] for every i. Existing regular
// files are kept aside until all renames succeed and put back otherwise.
func commitStaged(staged, paths []string) error {
	type move struct{ path, backup string }
	var moved []move
	rollback := func() {
		for j := len(moved) - 1; j >= 0; j-- {
			m := moved[j]
			os.Remove(m.path)
			if m.backup != "" {
				os.Rename(m.backup, m.path)
			}
		}
	}

	for i, path := range paths {
		backup := ""
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			backup = staged[i] + ".bak"
			if err := os.Rename(path, backup); err != nil {
				rollback()
				removeAll(staged[i:])
				return fmt.Errorf("failed to replace %s: %w", filepath.Base(path), err)
			}
		}
		if err := os.Rename(staged[i], path); err != nil {
			if backup != "" {
				os.Rename(backup, path)
			}
			rollback()
			removeAll(staged[i:])
			return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
		}
		moved = append(moved, move{path: path, backup: backup})
	}

	for _, m := range moved {
		if m.backup != "" {
			os.Remove(m.backup)
		}
	}
	return nil
}

func removeAll(paths []string) {
	for _, p := range paths {
		os.Remove(p)
	}
}

// tempPath creates an empty temporary file next to path, keeping its
// extension, and returns its name.
func tempPath(path string) (string, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))+"-*"+filepath.Ext(path))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := tmp.Name()
	tmp.Close()
	return name, nil
}

// saveAtomic lets save write to a temporary file next to path, then renames it
// into place. The temporary name keeps the extension of path.
func saveAtomic(path string, save func(tmpPath string) error) error {
	tmpPath, err := tempPath(path)
	if err != nil {
		return err
	}

	if err := save(tmpPath); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move %s into place: %w", filepath.Base(path), err)
	}
	return nil
}

// writeAtomic is saveAtomic for writers that stream to an io.Writer.
func writeAtomic(path string, write func(w io.Writer) error) error {
	return saveAtomic(path, func(tmpPath string) error {
		f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		if err := write(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}
