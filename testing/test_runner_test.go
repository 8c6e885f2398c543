package testing

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-sif/derive"
	errors "github.com/go-sif/derive/errors"
	"github.com/go-sif/derive/operations/transform"
	"github.com/go-sif/derive/table"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func createTestTable(t *testing.T) derive.Table {
	tbl, err := table.CreateTable(
		[]string{"input1", "input2", "strings"},
		[][]interface{}{
			{1, 2, 3, 4},
			{11, 21, 31, 41},
			{"1|2", "2|3", "3|4", "5|6"},
		},
	)
	require.Nil(t, err)
	return tbl
}

func double(value interface{}) interface{} {
	return value.(int) * 2
}

func TestLocalRunPipeline(t *testing.T) {
	defer goleak.VerifyNone(t)
	res, err := LocalRunPipeline(context.Background(), createTestTable(t), nil,
		transform.Unary("input1", "a", derive.PureUnary(double)),
		transform.Unary("input2", "b", derive.PureUnary(double)),
		transform.Unary("a", "input2", derive.PureUnary(double)),
		transform.Split("strings", []string{"s1", "s2"}, "|"),
	)
	require.Nil(t, err)
	col, err := res.Column("input2")
	require.Nil(t, err)
	require.Equal(t, []interface{}{4, 8, 12, 16}, col)
	col, err = res.Column("b")
	require.Nil(t, err)
	require.Equal(t, []interface{}{22, 42, 62, 82}, col)
}

func TestLocalRunPipelineError(t *testing.T) {
	defer goleak.VerifyNone(t)
	_, err := LocalRunPipeline(context.Background(), createTestTable(t), nil,
		transform.Unary("input1", "a", func(value interface{}) (interface{}, error) {
			return nil, fmt.Errorf("boom")
		}),
		transform.Unary("missing", "b", derive.PureUnary(double)),
	)
	var serr errors.StepError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 0, serr.Step)
}
