package table

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/cespare/xxhash/v2"
	"github.com/go-sif/derive"
	errors "github.com/go-sif/derive/errors"
)

// table is an ordered mapping from column names to columns of values.
// Column slices are never written after construction, so derived Tables
// share unchanged columns with the Table they were derived from.
type table struct {
	names   []string
	index   map[string]int
	columns [][]interface{}
	numRows int
}

// Empty returns a Table with no columns and no rows
func Empty() derive.Table {
	return &table{index: make(map[string]int)}
}

// CreateTable is a factory for Tables. names[i] is the name of columns[i].
// All columns must have the same length and names must be unique.
func CreateTable(names []string, columns [][]interface{}) (derive.Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("Table has %d column names but %d columns", len(names), len(columns))
	}
	return Empty().WithColumns(names, columns)
}

// FromRows builds a Table from row-major data, where each row holds one value per name
func FromRows(names []string, rows [][]interface{}) (derive.Table, error) {
	columns := make([][]interface{}, len(names))
	for c := range columns {
		columns[c] = make([]interface{}, len(rows))
	}
	for r, row := range rows {
		if len(row) != len(names) {
			return nil, fmt.Errorf("Row %d has %d values, expected %d", r, len(row), len(names))
		}
		for c, v := range row {
			columns[c][r] = v
		}
	}
	return CreateTable(names, columns)
}

// RowCount returns the number of rows in this Table
func (t *table) RowCount() int {
	return t.numRows
}

// NumColumns returns the number of columns in this Table
func (t *table) NumColumns() int {
	return len(t.names)
}

// ColumnNames returns the names in the Table, in column order
func (t *table) ColumnNames() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// HasColumn returns true iff this Table contains a column with the given name
func (t *table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns a copy of the values of a particular column
func (t *table) Column(name string) ([]interface{}, error) {
	idx, ok := t.index[name]
	if !ok {
		return nil, errors.MissingColumnError{Name: name}
	}
	values := make([]interface{}, len(t.columns[idx]))
	copy(values, t.columns[idx])
	return values, nil
}

// Row returns the values of row i, in column order
func (t *table) Row(i int) ([]interface{}, error) {
	if i < 0 || i >= t.numRows {
		return nil, fmt.Errorf("row index %d out of bounds [0..%d)", i, t.numRows)
	}
	row := make([]interface{}, len(t.columns))
	for c, col := range t.columns {
		row[c] = col[i]
	}
	return row, nil
}

// WithColumn returns a new Table containing name -> values. An existing column
// with the same name is overwritten in place of its original position.
func (t *table) WithColumn(name string, values []interface{}) (derive.Table, error) {
	return t.WithColumns([]string{name}, [][]interface{}{values})
}

// WithColumns returns a new Table containing every names[i] -> columns[i]. Either
// all columns are written, or none are.
func (t *table) WithColumns(names []string, columns [][]interface{}) (derive.Table, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%d column names given for %d columns", len(names), len(columns))
	}
	numRows := t.numRows
	if len(t.names) == 0 && len(columns) > 0 {
		// the first columns written to an empty Table define its row count
		numRows = len(columns[0])
	}
	seen := make(map[string]bool, len(names))
	for i, name := range names {
		if seen[name] {
			return nil, errors.DuplicateColumnError{Name: name}
		}
		seen[name] = true
		if len(columns[i]) != numRows {
			return nil, errors.LengthMismatchError{Name: name, Expected: numRows, Actual: len(columns[i])}
		}
	}

	next := t.clone()
	next.numRows = numRows
	for i, name := range names {
		values := make([]interface{}, len(columns[i]))
		copy(values, columns[i])
		if idx, ok := next.index[name]; ok {
			next.columns[idx] = values
			continue
		}
		next.index[name] = len(next.names)
		next.names = append(next.names, name)
		next.columns = append(next.columns, values)
	}
	return next, nil
}

// Equals returns nil iff both Tables hold the same columns, in the same order, with equal values
func (t *table) Equals(other derive.Table) error {
	if t.RowCount() != other.RowCount() {
		return fmt.Errorf("Tables have unequal row counts %d and %d", t.RowCount(), other.RowCount())
	}
	otherNames := other.ColumnNames()
	if len(t.names) != len(otherNames) {
		return fmt.Errorf("Tables have unequal numbers of columns %d and %d", len(t.names), len(otherNames))
	}
	for c, name := range t.names {
		if otherNames[c] != name {
			return fmt.Errorf("Column %d is named %s in one Table and %s in the other", c, name, otherNames[c])
		}
		otherValues, err := other.Column(name)
		if err != nil {
			return err
		}
		for r, v := range t.columns[c] {
			if !reflect.DeepEqual(v, otherValues[r]) {
				return fmt.Errorf("Column %s differs at row %d: %#v != %#v", name, r, v, otherValues[r])
			}
		}
	}
	return nil
}

// Fingerprint hashes the column names and values of this Table, in order
func (t *table) Fingerprint() uint64 {
	h := xxhash.New()
	writeLength(h, t.numRows)
	writeLength(h, len(t.names))
	for c, name := range t.names {
		writeField(h, name)
		for _, v := range t.columns[c] {
			writeField(h, fmt.Sprintf("%T:%v", v, v))
		}
	}
	return h.Sum64()
}

// fields are length-prefixed so that no value can mimic a boundary
func writeField(h *xxhash.Digest, s string) {
	writeLength(h, len(s))
	h.WriteString(s)
}

func writeLength(h *xxhash.Digest, n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	h.Write(buf[:])
}

// String renders this Table as an aligned text grid with a header line and a row index column
func (t *table) String() string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(w, "\t")
	for _, name := range t.names {
		fmt.Fprintf(w, "%s\t", name)
	}
	fmt.Fprintln(w)
	for r := 0; r < t.numRows; r++ {
		fmt.Fprintf(w, "%d\t", r)
		for c := range t.names {
			fmt.Fprintf(w, "%v\t", t.columns[c][r])
		}
		fmt.Fprintln(w)
	}
	w.Flush()
	return b.String()
}

// clone returns a shallow copy of this table. Column slices are shared.
func (t *table) clone() *table {
	next := &table{
		names:   make([]string, len(t.names), len(t.names)+1),
		index:   make(map[string]int, len(t.index)+1),
		columns: make([][]interface{}, len(t.columns), len(t.columns)+1),
		numRows: t.numRows,
	}
	copy(next.names, t.names)
	copy(next.columns, t.columns)
	for k, v := range t.index {
		next.index[k] = v
	}
	return next
}
