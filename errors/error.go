package errors

import (
	"fmt"
)

// MissingColumnError occurs when a referenced column does not exist in a Table
type MissingColumnError struct{ Name string }

// Error returns a textual representation of this MissingColumnError
func (e MissingColumnError) Error() string {
	return fmt.Sprintf("Table does not contain column with name %s", e.Name)
}

// DuplicateColumnError occurs when a Table is constructed with the same column name twice
type DuplicateColumnError struct{ Name string }

// Error returns a textual representation of this DuplicateColumnError
func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("Table already contains column with name %s", e.Name)
}

// LengthMismatchError occurs when a column's length disagrees with the row count of a Table
type LengthMismatchError struct {
	Name     string
	Expected int
	Actual   int
}

// Error returns a textual representation of this LengthMismatchError
func (e LengthMismatchError) Error() string {
	return fmt.Sprintf("Column %s has %d values, but the Table has %d rows", e.Name, e.Actual, e.Expected)
}

// ArityMismatchError occurs when splitting a value produces a different number
// of parts than there are output columns
type ArityMismatchError struct {
	Column   string
	Row      int
	Expected int
	Actual   int
}

// Error returns a textual representation of this ArityMismatchError
func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("Splitting column %s at row %d produced %d parts, expected %d", e.Column, e.Row, e.Actual, e.Expected)
}

// FunctionError occurs when a row function fails (or panics) while being applied to a row
type FunctionError struct {
	Column string // the output column being derived
	Row    int
	Err    error
}

// Error returns a textual representation of this FunctionError
func (e FunctionError) Error() string {
	return fmt.Sprintf("Function deriving column %s failed at row %d: %s", e.Column, e.Row, e.Err)
}

// Unwrap returns the error raised by the row function
func (e FunctionError) Unwrap() error {
	return e.Err
}

// StepError occurs when a step of a Pipeline fails. It identifies the step by position.
type StepError struct {
	Step int
	Spec string
	Err  error
}

// Error returns a textual representation of this StepError
func (e StepError) Error() string {
	return fmt.Sprintf("Pipeline step %d (%s) failed: %s", e.Step, e.Spec, e.Err)
}

// Unwrap returns the error which caused the step to fail
func (e StepError) Unwrap() error {
	return e.Err
}

// InvalidSpecError occurs when a DerivationSpec is structurally invalid
type InvalidSpecError struct {
	Spec string
	Err  error
}

// Error returns a textual representation of this InvalidSpecError
func (e InvalidSpecError) Error() string {
	return fmt.Sprintf("Invalid derivation %s: %s", e.Spec, e.Err)
}

// Unwrap returns the aggregated validation problems
func (e InvalidSpecError) Unwrap() error {
	return e.Err
}
