package dataset

import (
	"fmt"
	"os"

	"github.com/aretw0/infobot/pkg/domain"
	"gopkg.in/yaml.v3"
)

// readYAML reads a list of objects keyed by column header. JSON is accepted as YAML.
func readYAML(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(items))
	for i, item := range items {
		row := Row(item)
		if _, ok := row[domain.ColumnName]; !ok {
			return nil, fmt.Errorf("row %d: %w", i+1, requireHeaders(nil))
		}
		rows = append(rows, row)
	}
	return rows, nil
}
