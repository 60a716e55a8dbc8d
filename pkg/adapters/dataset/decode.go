package dataset

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/infobot/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

var moneyColumns = []string{
	domain.ColumnApplicationFee,
	domain.ColumnTuitionFee,
	domain.ColumnOtherFees,
}

var moneyType = reflect.TypeOf(domain.Money(0))

// Decode turns header-keyed rows into records. Errors name the 1-based data row
// and, for currency cells, the column.
func Decode(rows []Row) ([]domain.Record, error) {
	records := make([]domain.Record, 0, len(rows))
	for i, row := range rows {
		record, err := decodeRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func decodeRow(row Row) (domain.Record, error) {
	var record domain.Record

	for _, col := range moneyColumns {
		if _, err := toMoney(row[col]); err != nil {
			return record, fmt.Errorf("column %q: %w", col, err)
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &record,
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			trimHook,
			moneyHook,
		),
	})
	if err != nil {
		return record, err
	}
	if err := decoder.Decode(map[string]any(row)); err != nil {
		return record, err
	}

	if strings.TrimSpace(record.Name) == "" {
		return record, fmt.Errorf("column %q: empty name", domain.ColumnName)
	}
	return record, nil
}

// trimHook strips surrounding whitespace from text cells.
func trimHook(_ reflect.Type, _ reflect.Type, data any) (any, error) {
	if s, ok := data.(string); ok {
		return strings.TrimSpace(s), nil
	}
	return data, nil
}

// moneyHook normalizes currency cells written as free text.
func moneyHook(_ reflect.Type, t reflect.Type, data any) (any, error) {
	if t != moneyType {
		return data, nil
	}
	return toMoney(data)
}

func toMoney(v any) (domain.Money, error) {
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: missing", domain.ErrInvalidMoney)
	case domain.Money:
		return x, nil
	case float64:
		return domain.Money(x), nil
	case float32:
		return domain.Money(x), nil
	case int:
		return domain.Money(x), nil
	case int64:
		return domain.Money(x), nil
	case string:
		return domain.ParseMoney(x)
	case []byte:
		return domain.ParseMoney(string(x))
	default:
		return domain.ParseMoney(fmt.Sprint(x))
	}
}
