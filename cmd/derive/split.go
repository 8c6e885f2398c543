package main

import (
	"fmt"
	"strings"

	"github.com/go-sif/derive"
	"github.com/go-sif/derive/datasource/parser/dsv"
	"github.com/go-sif/derive/datasource/parser/jsonl"
	"github.com/go-sif/derive/operations/transform"
	"github.com/go-sif/derive/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newSplitCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Split a string column of a DSV or JSONL file into several columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			initial, err := loadTable(v)
			if err != nil {
				return err
			}
			into := splitList(v.GetString("into"))
			p := pipeline.New(newPipelineConf(v, cmd), transform.Split(v.GetString("column"), into, v.GetString("delimiter")))
			res, err := p.Run(initial)
			if err != nil {
				return err
			}
			return printResult(v, cmd, res, p)
		},
	}
	flags := cmd.Flags()
	flags.String("file", "", "input file")
	flags.String("format", "dsv", "input format: dsv or jsonl")
	flags.String("field-delimiter", ",", "field delimiter of DSV input")
	flags.String("columns", "", "comma-separated column names; gjson paths for jsonl input. DSV input defaults to its header row.")
	flags.String("types", "", "comma-separated column types, e.g. id=int,score=float. Untyped columns hold strings (dsv) or decoded JSON (jsonl).")
	flags.String("column", "", "column to split")
	flags.String("into", "", "comma-separated output column names")
	flags.String("delimiter", "|", "delimiter to split on")
	return cmd
}

func loadTable(v *viper.Viper) (derive.Table, error) {
	path := v.GetString("file")
	if path == "" {
		return nil, fmt.Errorf("--file is required")
	}
	columns := splitList(v.GetString("columns"))
	types, err := parseTypes(v.GetString("types"))
	if err != nil {
		return nil, err
	}
	switch v.GetString("format") {
	case "dsv":
		delim := []rune(v.GetString("field-delimiter"))
		if len(delim) != 1 {
			return nil, fmt.Errorf("--field-delimiter must be a single character")
		}
		return dsv.CreateParser(&dsv.ParserConf{Delimiter: delim[0], Columns: columns, Types: types}).ParseFile(path)
	case "jsonl":
		return jsonl.CreateParser(&jsonl.ParserConf{Columns: columns, Types: types}).ParseFile(path)
	default:
		return nil, fmt.Errorf("unknown format %q", v.GetString("format"))
	}
}

// parseTypes reads "name=type,..." into ColumnTypes by column name
func parseTypes(s string) (map[string]derive.ColumnType, error) {
	types := make(map[string]derive.ColumnType)
	for _, entry := range splitList(s) {
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("column type %q is not of the form name=type", entry)
		}
		ctype, err := derive.ColumnTypeFromName(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, err
		}
		types[strings.TrimSpace(parts[0])] = ctype
	}
	return types, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
