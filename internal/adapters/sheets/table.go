package sheets

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

type format int

const (
	formatXLSX format = iota
	formatCSV
)

// UnsupportedFormatError is returned for table files that are neither .xlsx nor .csv.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported table format %q, use .xlsx or .csv", e.Ext)
}

func formatOf(path string) (format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return formatXLSX, nil
	case ".csv":
		return formatCSV, nil
	default:
		return 0, &UnsupportedFormatError{Ext: ext}
	}
}

// readTable returns every row of the first sheet (xlsx) or of the file (csv).
func readTable(path string) ([][]string, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	if f == formatCSV {
		return readCSV(path)
	}
	return readXLSX(path)
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}

func readXLSX(path string) ([][]string, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := wb.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, path, err)
	}
	return rows, nil
}

// writeTable creates path holding header followed by rows, replacing any
// existing file.
func writeTable(path string, header []string, rows [][]any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if f == formatCSV {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := writeCSVRows(file, header, rows); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	wb := excelize.NewFile()
	defer wb.Close()
	sheet := wb.GetSheetName(0)
	if err := setRow(wb, sheet, 1, toCells(header)); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(wb, sheet, i+2, row); err != nil {
			return err
		}
	}
	return wb.SaveAs(path)
}

// appendRow adds row at the end of path. A missing file is created with
// header first. Existing rows are left untouched.
func appendRow(path string, header []string, row []any) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	if os.IsNotExist(statErr) {
		return writeTable(path, header, [][]any{row})
	}
	if statErr != nil {
		return statErr
	}

	if f == formatCSV {
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		if err := writeCSVRows(file, nil, [][]any{row}); err != nil {
			file.Close()
			return err
		}
		return file.Close()
	}

	wb, err := excelize.OpenFile(path)
	if err != nil {
		return err
	}
	defer wb.Close()

	sheet := wb.GetSheetName(0)
	existing, err := wb.GetRows(sheet)
	if err != nil {
		return err
	}
	if err := setRow(wb, sheet, len(existing)+1, row); err != nil {
		return err
	}
	return wb.Save()
}

func setRow(wb *excelize.File, sheet string, rowNum int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	return wb.SetSheetRow(sheet, cell, &cells)
}

func writeCSVRows(file *os.File, header []string, rows [][]any) error {
	w := csv.NewWriter(file)
	if header != nil {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
