package main

import (
	"fmt"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/operations/transform"
	"github.com/go-sif/derive/pipeline"
	"github.com/go-sif/derive/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDemoCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the sample pipeline over a built-in table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := demoTable()
			if err != nil {
				return err
			}
			p := pipeline.New(newPipelineConf(v, cmd), demoSteps()...)
			res, err := p.Run(initial)
			if err != nil {
				return err
			}
			return printResult(v, cmd, res, p)
		},
	}
}

func demoTable() (derive.Table, error) {
	return table.CreateTable(
		[]string{"input1", "input2", "strings"},
		[][]interface{}{
			{1, 2, 3, 4},
			{11, 21, 31, 41},
			{"1|2", "2|3", "3|4", "5|6"},
		},
	)
}

func demoSteps() []*derive.DerivationSpec {
	addOne := func(value interface{}) (interface{}, error) {
		ival, ok := value.(int)
		if !ok {
			return nil, fmt.Errorf("expected an int, got %T", value)
		}
		return ival + 1, nil
	}
	sum := func(values ...interface{}) (interface{}, error) {
		total := 0
		for _, v := range values {
			ival, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("expected an int, got %T", v)
			}
			total += ival
		}
		return total, nil
	}
	return []*derive.DerivationSpec{
		transform.Unary("input1", "new_column", addOne),
		transform.Nary([]string{"input1", "input2"}, "added", sum),
		transform.Split("strings", []string{"str_1", "str_2"}, "|"),
	}
}

func printResult(v *viper.Viper, cmd *cobra.Command, res derive.Table, p derive.Pipeline) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprint(out, res.String()); err != nil {
		return err
	}
	if v.GetBool("stats") {
		stats := p.Stats()
		_, err := fmt.Fprintf(out, "steps completed: %d, rows processed: %v, runtime: %s\n",
			stats.GetNumStepsCompleted(), stats.GetNumRowsProcessed(), stats.GetRuntime())
		return err
	}
	return nil
}
