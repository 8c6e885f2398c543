package dsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/table"
)

// ParserConf configures a DSV Parser
type ParserConf struct {
	HeaderLines int                          // The number of lines to ignore from the beginning of the input, before any column names. Defaults to 0.
	Delimiter   rune                         // The delimiter separating columns in the input. Defaults to ,
	Comment     rune                         // Lines beginning with the comment character are ignored. Cannot be equal to the Delimiter. Defaults to no comment character.
	NilValue    string                       // A special string which represents nil values in the dataset. Defaults to "" (the empty string).
	Columns     []string                     // Column names. If empty, the first record after any HeaderLines supplies them.
	Types       map[string]derive.ColumnType // ColumnTypes by column name. Columns without a ColumnType hold strings.
}

// Parser produces Tables from DSV data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new DSV Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.Delimiter == 0 {
		conf.Delimiter = ','
	}
	return &Parser{conf: conf}
}

// Parse reads all DSV records from r into a Table, one column per field
func (p *Parser) Parse(r io.Reader) (derive.Table, error) {
	// start parsing by creating a reader
	reader := csv.NewReader(r)
	reader.Comma = p.conf.Delimiter
	reader.Comment = p.conf.Comment
	reader.ReuseRecord = true
	// header lines may be ragged
	reader.FieldsPerRecord = -1

	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		_, err := reader.Read()
		if err == io.EOF {
			return table.Empty(), nil
		} else if err != nil {
			return nil, err
		}
	}

	names := p.conf.Columns
	if len(names) == 0 {
		record, err := reader.Read()
		if err == io.EOF {
			return table.Empty(), nil
		} else if err != nil {
			return nil, err
		}
		names = make([]string, len(record))
		copy(names, record)
	}
	reader.FieldsPerRecord = len(names)

	colTypes := make([]derive.ColumnType, len(names))
	for i, name := range names {
		if ctype, ok := p.conf.Types[name]; ok && ctype != nil {
			colTypes[i] = ctype
		} else {
			colTypes[i] = &derive.StringColumnType{}
		}
	}

	columns := make([][]interface{}, len(names))
	for i := range columns {
		columns[i] = []interface{}{}
	}
	for row := 0; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		for i, raw := range record {
			val, err := scanValue(p.conf, colTypes[i], raw)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", row, names[i], err)
			}
			columns[i] = append(columns[i], val)
		}
	}
	return table.CreateTable(names, columns)
}

// ParseFile parses the DSV file at path into a Table
func (p *Parser) ParseFile(path string) (derive.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}
