package derive

import (
	"fmt"
	"strings"

	errors "github.com/go-sif/derive/errors"
	"github.com/hashicorp/go-multierror"
)

// DerivationSpec describes one derivation step: which columns are read, which
// columns are written, and how values are computed. A DerivationSpec holds no
// state and may be applied to any number of Tables.
type DerivationSpec struct {
	Inputs    []string  // Inputs are the names of the columns read, in the order they are passed to the function
	Outputs   []string  // Outputs are the names of the columns written
	Mode      Mode      // Mode selects how the function is applied
	Unary     UnaryFunc // Unary is the function applied in UnaryMode
	Nary      NaryFunc  // Nary is the function applied in NaryRowMode
	Delimiter string    // Delimiter separates parts of a value in SplitMode
}

// Validate checks the structure of this DerivationSpec, reporting every problem at once
func (s *DerivationSpec) Validate() error {
	var merr *multierror.Error
	if len(s.Inputs) == 0 {
		merr = multierror.Append(merr, fmt.Errorf("at least one input column is required"))
	}
	if len(s.Outputs) == 0 {
		merr = multierror.Append(merr, fmt.Errorf("at least one output column is required"))
	}
	switch s.Mode {
	case UnaryMode:
		if len(s.Inputs) > 1 {
			merr = multierror.Append(merr, fmt.Errorf("%s mode reads exactly one input column, got %d", s.Mode, len(s.Inputs)))
		}
		if len(s.Outputs) > 1 {
			merr = multierror.Append(merr, fmt.Errorf("%s mode writes exactly one output column, got %d", s.Mode, len(s.Outputs)))
		}
		if s.Unary == nil {
			merr = multierror.Append(merr, fmt.Errorf("%s mode requires a UnaryFunc", s.Mode))
		}
	case NaryRowMode:
		if len(s.Outputs) > 1 {
			merr = multierror.Append(merr, fmt.Errorf("%s mode writes exactly one output column, got %d", s.Mode, len(s.Outputs)))
		}
		if s.Nary == nil {
			merr = multierror.Append(merr, fmt.Errorf("%s mode requires a NaryFunc", s.Mode))
		}
	case SplitMode:
		if len(s.Inputs) > 1 {
			merr = multierror.Append(merr, fmt.Errorf("%s mode reads exactly one input column, got %d", s.Mode, len(s.Inputs)))
		}
		if len(s.Delimiter) == 0 {
			merr = multierror.Append(merr, fmt.Errorf("%s mode requires a non-empty delimiter", s.Mode))
		}
	default:
		merr = multierror.Append(merr, fmt.Errorf("unknown mode %q", s.Mode))
	}
	seen := make(map[string]bool, len(s.Outputs))
	for _, name := range s.Outputs {
		if seen[name] {
			merr = multierror.Append(merr, fmt.Errorf("output column %s is declared more than once", name))
		}
		seen[name] = true
	}
	if err := merr.ErrorOrNil(); err != nil {
		return errors.InvalidSpecError{Spec: s.String(), Err: err}
	}
	return nil
}

// Reads returns true iff this DerivationSpec reads the named column
func (s *DerivationSpec) Reads(name string) bool {
	for _, in := range s.Inputs {
		if in == name {
			return true
		}
	}
	return false
}

// Writes returns true iff this DerivationSpec writes the named column
func (s *DerivationSpec) Writes(name string) bool {
	for _, out := range s.Outputs {
		if out == name {
			return true
		}
	}
	return false
}

// String produces a short description of this DerivationSpec, e.g. "split(strings -> str_1,str_2)"
func (s *DerivationSpec) String() string {
	return fmt.Sprintf("%s(%s -> %s)", s.Mode, strings.Join(s.Inputs, ","), strings.Join(s.Outputs, ","))
}
