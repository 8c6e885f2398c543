package derive

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// ColumnType describes how raw loader input becomes the values of a column.
// Loaders use it to build initial Tables; derivations never consult it.
type ColumnType interface {
	// Name returns a short identifier for this ColumnType
	Name() string
	// Parse converts a raw textual field into a value of this ColumnType
	Parse(raw string) (interface{}, error)
	// Coerce converts an already-decoded value (a JSON string, float64 or bool) into a value of this ColumnType
	Coerce(v interface{}) (interface{}, error)
}

// StringColumnType stores string values
type StringColumnType struct{}

// Name returns "string"
func (c *StringColumnType) Name() string { return "string" }

// Parse returns raw unchanged
func (c *StringColumnType) Parse(raw string) (interface{}, error) {
	return raw, nil
}

// Coerce accepts strings only
func (c *StringColumnType) Coerce(v interface{}) (interface{}, error) {
	sval, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("value was not a string. Was: %#v", v)
	}
	return sval, nil
}

// IntColumnType stores int values
type IntColumnType struct{}

// Name returns "int"
func (c *IntColumnType) Name() string { return "int" }

// Parse parses a base-10 integer
func (c *IntColumnType) Parse(raw string) (interface{}, error) {
	ival, err := strconv.ParseInt(raw, 10, strconv.IntSize)
	if err != nil {
		return nil, err
	}
	return int(ival), nil
}

// Coerce accepts JSON numbers without a fractional part
func (c *IntColumnType) Coerce(v interface{}) (interface{}, error) {
	switch nval := v.(type) {
	case int:
		return nval, nil
	case float64:
		// NaN fails the first check, infinities the range check
		limit := math.Ldexp(1, strconv.IntSize-1)
		if nval != math.Trunc(nval) || nval < -limit || nval >= limit {
			return nil, fmt.Errorf("value was not an integer. Was: %#v", v)
		}
		return int(nval), nil
	default:
		return nil, fmt.Errorf("value was not a number. Was: %#v", v)
	}
}

// FloatColumnType stores float64 values
type FloatColumnType struct{}

// Name returns "float"
func (c *FloatColumnType) Name() string { return "float" }

// Parse parses a 64-bit float
func (c *FloatColumnType) Parse(raw string) (interface{}, error) {
	return strconv.ParseFloat(raw, 64)
}

// Coerce accepts JSON numbers
func (c *FloatColumnType) Coerce(v interface{}) (interface{}, error) {
	switch nval := v.(type) {
	case float64:
		return nval, nil
	case int:
		return float64(nval), nil
	default:
		return nil, fmt.Errorf("value was not a number. Was: %#v", v)
	}
}

// BoolColumnType stores bool values
type BoolColumnType struct{}

// Name returns "bool"
func (c *BoolColumnType) Name() string { return "bool" }

// Parse parses any value accepted by strconv.ParseBool
func (c *BoolColumnType) Parse(raw string) (interface{}, error) {
	return strconv.ParseBool(raw)
}

// Coerce accepts JSON booleans
func (c *BoolColumnType) Coerce(v interface{}) (interface{}, error) {
	bval, ok := v.(bool)
	if !ok {
		return nil, fmt.Errorf("value was not a boolean. Was: %#v", v)
	}
	return bval, nil
}

// TimeColumnType stores time.Time values, parsed with Format
type TimeColumnType struct {
	Format string // a time.Parse layout. Defaults to time.RFC3339.
}

// Name returns "time"
func (c *TimeColumnType) Name() string { return "time" }

func (c *TimeColumnType) layout() string {
	if c.Format == "" {
		return time.RFC3339
	}
	return c.Format
}

// Parse parses raw with this TimeColumnType's Format
func (c *TimeColumnType) Parse(raw string) (interface{}, error) {
	tval, err := time.Parse(c.layout(), raw)
	if err != nil {
		return nil, fmt.Errorf("value could not be parsed as datetime with format %s. Was: %#v", c.layout(), raw)
	}
	return tval, nil
}

// Coerce accepts JSON strings in this TimeColumnType's Format
func (c *TimeColumnType) Coerce(v interface{}) (interface{}, error) {
	sval, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("value was not a string. Was: %#v", v)
	}
	return c.Parse(sval)
}

// ColumnTypeFromName returns the ColumnType identified by name, as used in configuration.
// Time columns use the default format.
func ColumnTypeFromName(name string) (ColumnType, error) {
	switch name {
	case "string", "":
		return &StringColumnType{}, nil
	case "int":
		return &IntColumnType{}, nil
	case "float":
		return &FloatColumnType{}, nil
	case "bool":
		return &BoolColumnType{}, nil
	case "time":
		return &TimeColumnType{}, nil
	default:
		return nil, fmt.Errorf("unknown column type %q", name)
	}
}
