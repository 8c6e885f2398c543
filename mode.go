package derive

// Mode describes how a DerivationSpec applies its function to the rows of a Table
type Mode string

const (
	// UnaryMode indicates that a single input column is mapped through a UnaryFunc into one output column
	UnaryMode Mode = "unary"
	// NaryRowMode indicates that several input columns are combined row-wise through a NaryFunc into one output column
	NaryRowMode Mode = "nary-row"
	// SplitMode indicates that a single string column is split by a delimiter into a fixed number of output columns
	SplitMode Mode = "split"
)
