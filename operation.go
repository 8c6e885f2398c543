package derive

// UnaryFunc - A function mapping the value of one input column to the value of one output column
type UnaryFunc func(value interface{}) (interface{}, error)

// NaryFunc - A function combining the values of several input columns, in the order they were
// declared, into the value of one output column. All values come from the same row.
type NaryFunc func(values ...interface{}) (interface{}, error)

// PureUnary lifts a function which cannot fail into a UnaryFunc
func PureUnary(fn func(value interface{}) interface{}) UnaryFunc {
	return func(value interface{}) (interface{}, error) {
		return fn(value), nil
	}
}

// PureNary lifts a function which cannot fail into a NaryFunc
func PureNary(fn func(values ...interface{}) interface{}) NaryFunc {
	return func(values ...interface{}) (interface{}, error) {
		return fn(values...), nil
	}
}
