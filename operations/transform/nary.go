package transform

import (
	"github.com/go-sif/derive"
)

// Nary declares that outputCol is derived by combining, row by row, the values of
// inputCols through fn. fn receives the values in the order of inputCols.
func Nary(inputCols []string, outputCol string, fn derive.NaryFunc) *derive.DerivationSpec {
	inputs := make([]string, len(inputCols))
	copy(inputs, inputCols)
	return &derive.DerivationSpec{
		Inputs:  inputs,
		Outputs: []string{outputCol},
		Mode:    derive.NaryRowMode,
		Nary:    fn,
	}
}
