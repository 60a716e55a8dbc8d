package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// readSQLite reads every row of table in rowid order.
func readSQLite(ctx context.Context, path, table string) ([]Row, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	query := fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, strings.ReplaceAll(table, `"`, `""`))
	rs, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}
	defer rs.Close()

	columns, err := rs.Columns()
	if err != nil {
		return nil, err
	}
	if err := requireHeaders(columns); err != nil {
		return nil, fmt.Errorf("table %q: %w", table, err)
	}

	var rows []Row
	for rs.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rs.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(columns))
		for i, col := range columns {
			switch v := values[i].(type) {
			case []byte:
				row[col] = string(v)
			case nil:
				row[col] = ""
			default:
				row[col] = v
			}
		}
		rows = append(rows, row)
	}
	return rows, rs.Err()
}
