package deriver

import (
	"fmt"
	"strings"

	"github.com/go-sif/derive"
	errors "github.com/go-sif/derive/errors"
	iutil "github.com/go-sif/derive/internal/util"
)

// Apply validates spec and applies it to t according to its Mode
func Apply(t derive.Table, spec *derive.DerivationSpec) (derive.Table, error) {
	if spec == nil {
		return nil, fmt.Errorf("DerivationSpec is nil")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	switch spec.Mode {
	case derive.UnaryMode:
		return ApplyUnary(t, spec.Inputs[0], spec.Outputs[0], spec.Unary)
	case derive.NaryRowMode:
		return ApplyNary(t, spec.Inputs, spec.Outputs[0], spec.Nary)
	case derive.SplitMode:
		return ApplySplit(t, spec.Inputs[0], spec.Outputs, spec.Delimiter)
	default:
		return nil, fmt.Errorf("unknown mode %q", spec.Mode)
	}
}

// ApplyUnary returns a new Table in which outputCol[i] = fn(inputCol[i]) for every row i
func ApplyUnary(t derive.Table, inputCol string, outputCol string, fn derive.UnaryFunc) (derive.Table, error) {
	if fn == nil {
		return nil, fmt.Errorf("UnaryFunc deriving column %s is nil", outputCol)
	}
	input, err := t.Column(inputCol)
	if err != nil {
		return nil, err
	}
	safeFn := iutil.SafeUnaryFunc(fn)
	output := make([]interface{}, len(input))
	for i := 0; i < len(input); i++ {
		v, err := safeFn(input[i])
		if err != nil {
			return nil, errors.FunctionError{Column: outputCol, Row: i, Err: err}
		}
		output[i] = v
	}
	return t.WithColumn(outputCol, output)
}

// ApplyNary returns a new Table in which outputCol[i] = fn(inputCols[0][i], inputCols[1][i], ...)
// for every row i. All values passed to a single call of fn come from the same row.
func ApplyNary(t derive.Table, inputCols []string, outputCol string, fn derive.NaryFunc) (derive.Table, error) {
	if fn == nil {
		return nil, fmt.Errorf("NaryFunc deriving column %s is nil", outputCol)
	}
	if len(inputCols) == 0 {
		return nil, fmt.Errorf("no input columns given for column %s", outputCol)
	}
	inputs := make([][]interface{}, len(inputCols))
	for c, name := range inputCols {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		inputs[c] = col
	}
	safeFn := iutil.SafeNaryFunc(fn)
	output := make([]interface{}, t.RowCount())
	for i := 0; i < len(output); i++ {
		// a fresh slice per row, since fn may retain its arguments
		args := make([]interface{}, len(inputs))
		for c := range inputs {
			args[c] = inputs[c][i]
		}
		v, err := safeFn(args...)
		if err != nil {
			return nil, errors.FunctionError{Column: outputCol, Row: i, Err: err}
		}
		output[i] = v
	}
	return t.WithColumn(outputCol, output)
}

// ApplySplit returns a new Table in which, for every row i, the string inputCol[i] is split
// on delimiter and part k is written to outputCols[k]. A value which does not split into
// exactly len(outputCols) parts fails the derivation with an ArityMismatchError.
func ApplySplit(t derive.Table, inputCol string, outputCols []string, delimiter string) (derive.Table, error) {
	if len(delimiter) == 0 {
		return nil, fmt.Errorf("cannot split column %s on an empty delimiter", inputCol)
	}
	if len(outputCols) == 0 {
		return nil, fmt.Errorf("no output columns given for splitting column %s", inputCol)
	}
	input, err := t.Column(inputCol)
	if err != nil {
		return nil, err
	}
	outputs := make([][]interface{}, len(outputCols))
	for k := range outputs {
		outputs[k] = make([]interface{}, len(input))
	}
	for i, v := range input {
		str, ok := v.(string)
		if !ok {
			return nil, errors.FunctionError{
				Column: inputCol,
				Row:    i,
				Err:    fmt.Errorf("cannot split value %#v of type %T, expected a string", v, v),
			}
		}
		parts := strings.Split(str, delimiter)
		if len(parts) != len(outputCols) {
			return nil, errors.ArityMismatchError{Column: inputCol, Row: i, Expected: len(outputCols), Actual: len(parts)}
		}
		for k, part := range parts {
			outputs[k][i] = part
		}
	}
	return t.WithColumns(outputCols, outputs)
}
