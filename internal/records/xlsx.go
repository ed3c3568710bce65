package records

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	godocx "github.com/Navl-bm/go-docx-tables"
)

// LoadXLSX reads a worksheet whose first row holds placeholder tokens and
// whose following rows hold one record each. Blank rows are skipped and
// columns with an empty header are ignored. A token may head only one column.
func LoadXLSX(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	ds, err := fromRows(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: sheet %q: %w", path, sheet, err)
	}
	return ds, nil
}

func fromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.New("missing header row")
	}

	ds := &Dataset{}
	var columns []int
	seen := make(map[string]int)
	for i, cell := range rows[0] {
		token := strings.TrimSpace(cell)
		if token == "" {
			continue
		}
		if prev, ok := seen[token]; ok {
			return nil, fmt.Errorf("placeholder %q appears in columns %s and %s",
				token, columnName(prev), columnName(i))
		}
		seen[token] = i
		ds.Placeholders = append(ds.Placeholders, token)
		columns = append(columns, i)
	}
	if len(columns) == 0 {
		return nil, errors.New("header row has no placeholders")
	}

	for _, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		record := make(godocx.Record, len(columns))
		for j, col := range columns {
			value := ""
			if col < len(row) {
				value = row[col]
			}
			record[ds.Placeholders[j]] = value
		}
		ds.Records = append(ds.Records, record)
	}
	return ds, nil
}

// columnName turns a zero-based column index into its sheet letter.
func columnName(i int) string {
	name, err := excelize.ColumnNumberToName(i + 1)
	if err != nil {
		return fmt.Sprint(i + 1)
	}
	return name
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
