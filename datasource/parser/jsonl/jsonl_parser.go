package jsonl

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/table"
	"github.com/tidwall/gjson"
)

// ParserConf configures a JSONL Parser, suitable for JSON lines data
type ParserConf struct {
	HeaderLines   int                          // The number of lines to ignore from the beginning of the input. Defaults to 0.
	Comment       rune                         // Lines beginning with the comment character are ignored. Defaults to no comment character.
	MaxBufferSize int                          // Maximum size in bytes of the buffer used to read lines from the input
	Columns       []string                     // Column names, each a gjson path evaluated against every line
	Types         map[string]derive.ColumnType // ColumnTypes by column name. Columns without a ColumnType hold decoded JSON values (float64 for numbers).
}

// Parser produces Tables from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser. Columns are parsed from each line of JSON using their column name, which should be a gjson path. Values within the JSON which do not correspond to a column are ignored.
func CreateParser(conf *ParserConf) *Parser {
	if conf == nil {
		conf = &ParserConf{}
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// Parse reads every line of JSON from r into a Table with one row per line. Blank lines are skipped.
func (p *Parser) Parse(r io.Reader) (derive.Table, error) {
	if len(p.conf.Columns) == 0 {
		return nil, fmt.Errorf("JSONL parsing requires at least one column")
	}
	// start parsing by creating a scanner
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	// ignore header lines, if configured to do so
	for i := 0; i < p.conf.HeaderLines; i++ {
		if !scanner.Scan() {
			break
		}
	}

	colTypes := make([]derive.ColumnType, len(p.conf.Columns))
	for i, name := range p.conf.Columns {
		colTypes[i] = p.conf.Types[name]
	}
	columns := make([][]interface{}, len(p.conf.Columns))
	for i := range columns {
		columns[i] = []interface{}{}
	}
	line := p.conf.HeaderLines
	for scanner.Scan() {
		line++
		rowString := strings.TrimSpace(scanner.Text())
		if len(rowString) == 0 || (p.conf.Comment != 0 && strings.HasPrefix(rowString, string(p.conf.Comment))) {
			continue
		}
		if !gjson.Valid(rowString) {
			return nil, fmt.Errorf("line %d is not valid JSON:\n\t%s", line, rowString)
		}
		err := parseJSONRow(p.conf.Columns, colTypes, gjson.Parse(rowString), columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return table.CreateTable(p.conf.Columns, columns)
}

// ParseFile parses the JSONL file at path into a Table
func (p *Parser) ParseFile(path string) (derive.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.Parse(f)
}
