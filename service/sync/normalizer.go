package sync

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"libas.GO/core/fault"
	entity "libas.GO/model/entity"
)

// lenientFloatHook coerces anything numeric-ish into float64 and maps
// unparseable values to 0 instead of failing the row.
func lenientFloatHook() mapstructure.DecodeHookFunc {
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t.Kind() != reflect.Float64 {
			return data, nil
		}
		switch v := data.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		case int32:
			return float64(v), nil
		case int64:
			return float64(v), nil
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return float64(0), nil
			}
			return parsed, nil
		}
		return data, nil
	}
}

// Normalize turns a raw extraction into cache items. Column names are trimmed
// (the source occasionally pads them), nil numerics become zero, and the row
// order is preserved. The only way this fails is an unusable row shape:
// a result set without an ItemName column at all.
func Normalize(raw *RawResult) ([]entity.Item, error) {
	if raw == nil {
		return nil, fault.New(fault.Schema, "normalize", "nil extraction result")
	}

	hasName := false
	for _, col := range raw.Columns {
		if strings.TrimSpace(col) == "ItemName" {
			hasName = true
			break
		}
	}
	if !hasName {
		return nil, fault.New(fault.Schema, "normalize",
			fmt.Sprintf("result has no ItemName column (columns: %s)", strings.Join(raw.Columns, ", ")))
	}

	items := make([]entity.Item, 0, len(raw.Rows))
	for i, row := range raw.Rows {
		clean := make(map[string]interface{}, len(row))
		for k, v := range row {
			if v == nil {
				continue // missing value, field keeps its zero default
			}
			clean[strings.TrimSpace(k)] = v
		}

		var it entity.Item
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			DecodeHook:       lenientFloatHook(),
			Result:           &it,
			TagName:          "mapstructure",
		})
		if err != nil {
			return nil, fault.Wrap(fault.Schema, "normalize", err)
		}
		if err := dec.Decode(clean); err != nil {
			return nil, fault.Wrap(fault.Schema, "normalize",
				fmt.Errorf("row %d: %w", i, err))
		}
		it.ItemCode = strings.TrimSpace(it.ItemCode)
		items = append(items, it)
	}
	return items, nil
}
