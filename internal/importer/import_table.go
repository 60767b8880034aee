package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Table is the cleaned tabular view of an uploaded workbook: one header row,
// each data row keyed by column name.
type Table struct {
	Columns []string
	Rows    []map[string]string
}

// ParseWorkbook reads the first worksheet. Headers are trimmed, headers with
// a leading underscore are renamed to avoid colliding with internal column
// names, and columns whose every data cell is empty are dropped.
func ParseWorkbook(r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("worksheet %q is empty", sheets[0])
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		h = strings.TrimSpace(h)
		if strings.HasPrefix(h, "_") {
			h = "Unnamed" + h
		}
		headers[i] = h
	}

	dataRows := make([]map[string]string, 0, len(rows)-1)
	nonEmpty := make([]bool, len(headers))

	for _, raw := range rows[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if i < len(raw) {
				cell = strings.TrimSpace(raw[i])
			}
			row[h] = cell
			if cell != "" {
				nonEmpty[i] = true
			}
		}
		dataRows = append(dataRows, row)
	}

	columns := make([]string, 0, len(headers))
	for i, h := range headers {
		if h == "" || !nonEmpty[i] {
			continue
		}
		columns = append(columns, h)
	}

	// Drop the all-empty columns from the rows too.
	keep := make(map[string]bool, len(columns))
	for _, c := range columns {
		keep[c] = true
	}
	for _, row := range dataRows {
		for name := range row {
			if !keep[name] {
				delete(row, name)
			}
		}
	}

	return &Table{Columns: columns, Rows: dataRows}, nil
}
