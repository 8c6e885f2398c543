package util

import (
	"fmt"

	"github.com/go-sif/derive"
)

// SafeUnaryFunc wraps a UnaryFunc such that panics are recovered and nice error messages are constructed.
// Errors returned by fn are passed through untouched.
func SafeUnaryFunc(fn derive.UnaryFunc) (safeFn derive.UnaryFunc) {
	return func(value interface{}) (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Unary Panic: %w\nValue: %#v\n%s", anErr, value, GetTrace())
				} else {
					err = fmt.Errorf("Unary Panic: %v\nValue: %#v\n%s", r, value, GetTrace())
				}
			}
		}()
		result, err = fn(value)
		return
	}
}

// SafeNaryFunc wraps a NaryFunc such that panics are recovered and nice error messages are constructed.
// Errors returned by fn are passed through untouched.
func SafeNaryFunc(fn derive.NaryFunc) (safeFn derive.NaryFunc) {
	return func(values ...interface{}) (result interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				if anErr, ok := r.(error); ok {
					err = fmt.Errorf("Nary Panic: %w\nValues: %#v\n%s", anErr, values, GetTrace())
				} else {
					err = fmt.Errorf("Nary Panic: %v\nValues: %#v\n%s", r, values, GetTrace())
				}
			}
		}()
		result, err = fn(values...)
		return
	}
}
