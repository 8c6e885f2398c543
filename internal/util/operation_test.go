package util

import (
	"fmt"
	"testing"

	"github.com/go-sif/derive"
	"github.com/stretchr/testify/require"
)

func TestSafeUnaryFuncRecoversPanics(t *testing.T) {
	fn := SafeUnaryFunc(func(value interface{}) (interface{}, error) {
		return value.(int) + 1, nil
	})
	res, err := fn(1)
	require.Nil(t, err)
	require.Equal(t, 2, res)

	_, err = fn("not an int")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Unary Panic")
}

func TestSafeUnaryFuncPassesErrorsThrough(t *testing.T) {
	cause := fmt.Errorf("boom")
	fn := SafeUnaryFunc(func(value interface{}) (interface{}, error) {
		return nil, cause
	})
	_, err := fn(1)
	require.Equal(t, cause, err)
}

func TestSafeNaryFuncRecoversErrorPanics(t *testing.T) {
	cause := fmt.Errorf("boom")
	fn := SafeNaryFunc(func(values ...interface{}) (interface{}, error) {
		panic(cause)
	})
	_, err := fn(1, 2)
	require.NotNil(t, err)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "Nary Panic")
}

func TestSafeNaryFuncPure(t *testing.T) {
	fn := SafeNaryFunc(derive.PureNary(func(values ...interface{}) interface{} {
		return len(values)
	}))
	res, err := fn(1, 2, 3)
	require.Nil(t, err)
	require.Equal(t, 3, res)
}
