package transform

import (
	"github.com/go-sif/derive"
)

// Unary declares that outputCol is derived by mapping
// each value of inputCol through fn
func Unary(inputCol string, outputCol string, fn derive.UnaryFunc) *derive.DerivationSpec {
	return &derive.DerivationSpec{
		Inputs:  []string{inputCol},
		Outputs: []string{outputCol},
		Mode:    derive.UnaryMode,
		Unary:   fn,
	}
}
