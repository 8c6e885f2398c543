package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/go-sif/derive"
	errors "github.com/go-sif/derive/errors"
	"github.com/go-sif/derive/logging"
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

func addOne(value interface{}) interface{} {
	return value.(int) + 1
}

func sum(values ...interface{}) interface{} {
	total := 0
	for _, v := range values {
		total += v.(int)
	}
	return total
}

func exampleSteps() []*derive.DerivationSpec {
	return []*derive.DerivationSpec{
		transform.Unary("input1", "new_column", derive.PureUnary(addOne)),
		transform.Nary([]string{"input1", "input2"}, "added", derive.PureNary(sum)),
		transform.Split("strings", []string{"str_1", "str_2"}, "|"),
	}
}

func requireColumn(t *testing.T, tbl derive.Table, name string, want []interface{}) {
	got, err := tbl.Column(name)
	require.Nil(t, err)
	require.Equal(t, want, got, name)
}

func TestPipelineEndToEnd(t *testing.T) {
	res, err := Run(createTestTable(t), exampleSteps()...)
	require.Nil(t, err)
	require.Equal(t, 7, res.NumColumns())
	require.Equal(t, 4, res.RowCount())
	require.Equal(t, []string{"input1", "input2", "strings", "new_column", "added", "str_1", "str_2"}, res.ColumnNames())
	requireColumn(t, res, "new_column", []interface{}{2, 3, 4, 5})
	requireColumn(t, res, "added", []interface{}{12, 23, 34, 45})
	requireColumn(t, res, "str_1", []interface{}{"1", "2", "3", "5"})
	requireColumn(t, res, "str_2", []interface{}{"2", "3", "4", "6"})
}

func TestPipelineDoesNotModifyInitialTable(t *testing.T) {
	initial := createTestTable(t)
	fingerprint := initial.Fingerprint()
	_, err := Run(initial, exampleSteps()...)
	require.Nil(t, err)
	require.Equal(t, fingerprint, initial.Fingerprint())
	require.Equal(t, 3, initial.NumColumns())
}

func TestPipelineRerunIsReproducible(t *testing.T) {
	initial := createTestTable(t)
	p := New(nil, exampleSteps()...)
	res1, err := p.Run(initial)
	require.Nil(t, err)
	res2, err := p.Run(initial)
	require.Nil(t, err)
	require.Nil(t, res1.Equals(res2))
	require.Equal(t, res1.Fingerprint(), res2.Fingerprint())
}

func TestPipelineEmpty(t *testing.T) {
	initial := createTestTable(t)
	res, err := Run(initial)
	require.Nil(t, err)
	require.Nil(t, initial.Equals(res))
}

func TestPipelineSequentialDependency(t *testing.T) {
	res, err := Run(createTestTable(t),
		transform.Unary("input1", "a", derive.PureUnary(addOne)),
		transform.Unary("a", "b", derive.PureUnary(addOne)),
		transform.Nary([]string{"a", "b"}, "c", derive.PureNary(sum)),
	)
	require.Nil(t, err)
	requireColumn(t, res, "b", []interface{}{3, 4, 5, 6})
	requireColumn(t, res, "c", []interface{}{5, 7, 9, 11})
}

func TestPipelineOverwriteLastWriteWins(t *testing.T) {
	res, err := Run(createTestTable(t),
		transform.Unary("input1", "out", derive.PureUnary(addOne)),
		transform.Unary("input2", "out", derive.PureUnary(addOne)),
	)
	require.Nil(t, err)
	require.Equal(t, 4, res.NumColumns())
	requireColumn(t, res, "out", []interface{}{12, 22, 32, 42})
}

func TestPipelineStepError(t *testing.T) {
	steps := append(exampleSteps(), transform.Split("strings", []string{"only_one"}, "|"))
	res, err := Run(createTestTable(t), steps...)
	require.Nil(t, res)
	var serr errors.StepError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 3, serr.Step)
	var aerr errors.ArityMismatchError
	require.ErrorAs(t, err, &aerr)
	require.Equal(t, 0, aerr.Row)
	require.Equal(t, 1, aerr.Expected)
	require.Equal(t, 2, aerr.Actual)
}

func TestPipelineMissingColumnStep(t *testing.T) {
	_, err := Run(createTestTable(t),
		transform.Unary("input1", "a", derive.PureUnary(addOne)),
		transform.Unary("nope", "b", derive.PureUnary(addOne)),
	)
	var serr errors.StepError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 1, serr.Step)
	var merr errors.MissingColumnError
	require.ErrorAs(t, err, &merr)
}

func TestPipelineFunctionErrorRow(t *testing.T) {
	_, err := Run(createTestTable(t),
		transform.Unary("input1", "a", func(value interface{}) (interface{}, error) {
			if value.(int) == 4 {
				return nil, fmt.Errorf("four")
			}
			return value, nil
		}),
	)
	var serr errors.StepError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 0, serr.Step)
	var ferr errors.FunctionError
	require.ErrorAs(t, err, &ferr)
	require.Equal(t, 3, ferr.Row)
}

func TestPipelineNilStep(t *testing.T) {
	_, err := Run(createTestTable(t), exampleSteps()[0], nil)
	var serr errors.StepError
	require.ErrorAs(t, err, &serr)
	require.Equal(t, 1, serr.Step)
	require.Equal(t, "<nil>", serr.Spec)
}

func TestPipelineStats(t *testing.T) {
	p := New(nil, exampleSteps()...)
	_, err := p.Run(createTestTable(t))
	require.Nil(t, err)
	stats := p.Stats()
	require.Equal(t, 3, stats.GetNumStepsCompleted())
	require.Equal(t, []int64{4, 4, 4}, stats.GetNumRowsProcessed())
	require.Len(t, stats.GetStepRuntimes(), 3)
	require.Len(t, p.Steps(), 3)
}

func TestPipelineLogsRunID(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf, logging.DebugLevel, false)
	p := New(&Conf{Logger: &logger}, exampleSteps()...)
	_, err := p.Run(createTestTable(t))
	require.Nil(t, err)
	require.Contains(t, buf.String(), `"run_id"`)
	require.Contains(t, buf.String(), "step finished")
}

func TestRunParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t)
	initial := createTestTable(t)
	steps := append(exampleSteps(),
		transform.Unary("new_column", "chained", derive.PureUnary(addOne)),
		transform.Unary("input2", "input1", derive.PureUnary(addOne)),
		transform.Nary([]string{"chained", "added"}, "total", derive.PureNary(sum)),
	)
	sequential, err := Run(initial, steps...)
	require.Nil(t, err)
	parallel, err := New(&Conf{Parallel: true}, steps...).Run(initial)
	require.Nil(t, err)
	require.Nil(t, sequential.Equals(parallel))
	require.Equal(t, sequential.Fingerprint(), parallel.Fingerprint())
}

func TestRunParallelKeepsSequentialColumnOrder(t *testing.T) {
	defer goleak.VerifyNone(t)
	initial, err := table.CreateTable([]string{"a"}, [][]interface{}{{1, 2}})
	require.Nil(t, err)
	steps := []*derive.DerivationSpec{
		transform.Unary("a", "b", derive.PureUnary(addOne)),
		transform.Unary("b", "c", derive.PureUnary(addOne)),
		transform.Unary("a", "d", derive.PureUnary(addOne)),
		transform.Unary("c", "a", derive.PureUnary(addOne)),
	}
	sequential, err := Run(initial, steps...)
	require.Nil(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, sequential.ColumnNames())
	parallel, err := New(&Conf{Parallel: true}, steps...).Run(initial)
	require.Nil(t, err)
	require.Equal(t, sequential.ColumnNames(), parallel.ColumnNames())
	require.Nil(t, sequential.Equals(parallel))
	require.Equal(t, sequential.Fingerprint(), parallel.Fingerprint())
}

func TestRunParallelReportsEarliestStep(t *testing.T) {
	defer goleak.VerifyNone(t)
	steps := []*derive.DerivationSpec{
		transform.Unary("input1", "a", derive.PureUnary(addOne)),
		transform.Unary("a", "b", func(value interface{}) (interface{}, error) {
			return nil, fmt.Errorf("always fails")
		}),
		transform.Unary("nope", "c", derive.PureUnary(addOne)),
	}
	_, seqErr := Run(createTestTable(t), steps...)
	_, parErr := New(&Conf{Parallel: true}, steps...).RunParallel(context.Background(), createTestTable(t))
	var seq, par errors.StepError
	require.ErrorAs(t, seqErr, &seq)
	require.ErrorAs(t, parErr, &par)
	require.Equal(t, 1, seq.Step)
	require.Equal(t, seq.Step, par.Step)
}

func TestRunParallelCancelled(t *testing.T) {
	defer goleak.VerifyNone(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(nil, exampleSteps()...).RunParallel(ctx, createTestTable(t))
	require.Equal(t, context.Canceled, err)
}

func TestPlanWaves(t *testing.T) {
	steps := []*derive.DerivationSpec{
		transform.Unary("input1", "a", derive.PureUnary(addOne)),      // 0
		transform.Unary("input2", "b", derive.PureUnary(addOne)),      // 1
		transform.Nary([]string{"a", "b"}, "c", derive.PureNary(sum)), // 2 reads 0, 1
		transform.Split("strings", []string{"s1", "s2"}, "|"),         // 3
		transform.Unary("input2", "input1", derive.PureUnary(addOne)), // 4 overwrites what 0 reads
		transform.Unary("input2", "b", derive.PureUnary(addOne)),      // 5 overwrites what 1 writes, 2 reads
		nil,                                                           // 6
	}
	require.Equal(t, [][]int{{0, 1, 3}, {2, 4}, {5}, {6}}, planWaves(steps))
}

func TestRunParallelMaxConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)
	initial := createTestTable(t)
	sequential, err := Run(initial, exampleSteps()...)
	require.Nil(t, err)
	parallel, err := New(&Conf{MaxConcurrency: 1}, exampleSteps()...).RunParallel(context.Background(), initial)
	require.Nil(t, err)
	require.Nil(t, sequential.Equals(parallel))
}
