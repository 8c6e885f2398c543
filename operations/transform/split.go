package transform

import (
	"github.com/go-sif/derive"
)

// Split declares that each string value of inputCol is split on delimiter,
// with part k written to outputCols[k]. Every value must split into exactly
// len(outputCols) parts.
func Split(inputCol string, outputCols []string, delimiter string) *derive.DerivationSpec {
	outputs := make([]string, len(outputCols))
	copy(outputs, outputCols)
	return &derive.DerivationSpec{
		Inputs:    []string{inputCol},
		Outputs:   outputs,
		Mode:      derive.SplitMode,
		Delimiter: delimiter,
	}
}
