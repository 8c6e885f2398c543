package derive

// Table is an ordered mapping from column names to equal-length columns
// of values. Row index i denotes the same logical record in every column.
// Tables are values: WithColumn and WithColumns return a new Table and
// never modify the receiver.
type Table interface {
	RowCount() int   // RowCount returns the number of rows, 0 for an empty Table
	NumColumns() int // NumColumns returns the number of columns
	ColumnNames() []string
	HasColumn(name string) bool
	Column(name string) ([]interface{}, error) // Column returns a copy of the named column, or a MissingColumnError
	Row(i int) ([]interface{}, error)          // Row returns the values at row i, in column order
	WithColumn(name string, values []interface{}) (Table, error)
	WithColumns(names []string, columns [][]interface{}) (Table, error)
	Equals(other Table) error // Equals returns nil iff both Tables hold the same columns, in the same order, with equal values
	Fingerprint() uint64      // Fingerprint hashes column names and values, for comparing pipeline runs
	String() string
}
