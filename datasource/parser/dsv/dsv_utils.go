package dsv

import (
	"github.com/go-sif/derive"
)

// Parses a single field according to its ColumnType. Nil values stay nil.
func scanValue(conf *ParserConf, colType derive.ColumnType, raw string) (interface{}, error) {
	// string columns keep empty fields unless a NilValue is configured
	if _, ok := colType.(*derive.StringColumnType); ok {
		if len(conf.NilValue) > 0 && raw == conf.NilValue {
			return nil, nil
		}
		return raw, nil
	}
	if len(raw) == 0 || raw == conf.NilValue {
		return nil, nil
	}
	return colType.Parse(raw)
}
