package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"
)

func readCSV(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	lines, err := r.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("line %d: %v", parseErr.Line, parseErr.Err)
		}
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errors.New("no header line")
	}

	headers := lines[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}
	if err := requireHeaders(headers); err != nil {
		return nil, err
	}
	return rowsFromTable(headers, lines[1:]), nil
}
