package jsonl

import (
	"fmt"

	"github.com/go-sif/derive"
	"github.com/tidwall/gjson"
)

// parseJSONRow appends the value of each column path within row to the matching column
func parseJSONRow(names []string, colTypes []derive.ColumnType, row gjson.Result, columns [][]interface{}) error {
	for i, name := range names {
		val, err := parseValue(row.Get(name), colTypes[i])
		if err != nil {
			return fmt.Errorf("column %s: %w", name, err)
		}
		columns[i] = append(columns[i], val)
	}
	return nil
}

// missing and null values are nil, regardless of type
func parseValue(res gjson.Result, colType derive.ColumnType) (interface{}, error) {
	if !res.Exists() || res.Type == gjson.Null {
		return nil, nil
	}
	if colType == nil {
		return res.Value(), nil
	}
	return colType.Coerce(res.Value())
}
