package normalizer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one raw exporter row keyed by its original column header.
type Row map[string]string

// ReadFile loads an exporter batch. CSV and Excel exports are supported,
// matching the two formats the KQL export job produces.
func ReadFile(path string) ([]Row, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return readCSV(path)
	case ".xlsx", ".xls":
		return readExcel(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (want .csv or .xlsx)", filepath.Ext(path))
	}
}

func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return toRows(records[0], records[1:]), nil
}

func readExcel(path string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	return toRows(records[0], records[1:]), nil
}

func toRows(header []string, records [][]string) []Row {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		row := make(Row, len(header))
		for i, col := range header {
			col = strings.TrimSpace(col)
			if col == "" {
				continue
			}
			// Excel rows may be shorter than the header when trailing
			// cells are empty.
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}
