package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
)

// Format identifies a catalog source encoding.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatYAML   Format = "yaml"
	FormatSQLite Format = "sqlite"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "colleges"

// Row is one source record keyed by column header.
type Row map[string]any

type options struct {
	table string
	sheet string
}

// Option configures Load.
type Option func(*options)

// WithTable selects the SQLite table to read.
func WithTable(table string) Option {
	return func(o *options) {
		if table != "" {
			o.table = table
		}
	}
}

// WithSheet selects the XLSX sheet to read instead of the first one.
func WithSheet(sheet string) Option {
	return func(o *options) {
		o.sheet = sheet
	}
}

// Detect picks the format from the file extension.
func Detect(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	case ".json", ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("%w: %s: unsupported file extension %q", domain.ErrCatalogLoad, path, filepath.Ext(path))
	}
}

// Load reads the catalog at path. The records keep the source order.
func Load(ctx context.Context, path string, opts ...Option) ([]domain.Record, error) {
	o := options{table: DefaultTable}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := Detect(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogLoad, err)
	}

	var rows []Row
	switch format {
	case FormatCSV:
		rows, err = readCSV(path)
	case FormatXLSX:
		rows, err = readXLSX(path, o.sheet)
	case FormatYAML:
		rows, err = readYAML(path)
	case FormatSQLite:
		rows, err = readSQLite(ctx, path, o.table)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogLoad, path, err)
	}

	records, err := Decode(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCatalogLoad, path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", path, domain.ErrEmptyCatalog)
	}
	return records, nil
}

// requireHeaders checks that the identifying column is present.
func requireHeaders(headers []string) error {
	for _, h := range headers {
		if strings.TrimSpace(h) == domain.ColumnName {
			return nil
		}
	}
	return fmt.Errorf("missing required column %q", domain.ColumnName)
}

// rowsFromTable zips a header line with data lines. Short lines leave cells empty.
func rowsFromTable(headers []string, lines [][]string) []Row {
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		if blankLine(line) {
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(line) {
				row[h] = line[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func blankLine(line []string) bool {
	for _, cell := range line {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
