package dataset

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads sheet, or the first sheet when sheet is empty.
// The first row holds the headers.
func readXLSX(path, sheet string) ([]Row, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if sheet == "" {
		return nil, errors.New("workbook has no sheets")
	}

	lines, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("sheet %q: no header row", sheet)
	}
	if err := requireHeaders(lines[0]); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	return rowsFromTable(lines[0], lines[1:]), nil
}
