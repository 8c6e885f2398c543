package jsonl

import (
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sif/derive"
	"github.com/stretchr/testify/require"
)

const people = `{"name": "Sean", "meta": { "index": 1, "first": "Sean", "last": "McIntyre"}}
{"name": "Chris", "meta": { "index": 3, "first": "Chris", "last": "Dickson"}}

{"name": "Phil", "meta": { "index": 2, "first": "Phil", "last": "Laliberté"}}
{"name": "Fahd", "meta": { "index": 4, "first": "Fahd"}}
`

func peopleParser() *Parser {
	return CreateParser(&ParserConf{
		Columns: []string{"name", "meta.index", "meta.first", "meta.last"},
		Types: map[string]derive.ColumnType{
			"meta.index": &derive.IntColumnType{},
			"meta.last":  &derive.StringColumnType{},
		},
	})
}

func TestJSONLParser(t *testing.T) {
	res, err := peopleParser().Parse(strings.NewReader(people))
	require.Nil(t, err)
	require.Equal(t, 4, res.RowCount())
	require.Equal(t, []string{"name", "meta.index", "meta.first", "meta.last"}, res.ColumnNames())
	index, err := res.Column("meta.index")
	require.Nil(t, err)
	require.Equal(t, []interface{}{1, 3, 2, 4}, index)
	last, err := res.Column("meta.last")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"McIntyre", "Dickson", "Laliberté", nil}, last)
}

func TestJSONLParserUntypedValues(t *testing.T) {
	res, err := CreateParser(&ParserConf{Columns: []string{"n", "b", "s"}}).Parse(strings.NewReader(
		"{\"n\": 1.5, \"b\": true, \"s\": \"1|2\"}\n{\"n\": 2, \"b\": false, \"s\": null}\n",
	))
	require.Nil(t, err)
	row, err := res.Row(0)
	require.Nil(t, err)
	require.Equal(t, []interface{}{1.5, true, "1|2"}, row)
	row, err = res.Row(1)
	require.Nil(t, err)
	require.Equal(t, []interface{}{float64(2), false, nil}, row)
}

func TestJSONLParserHeaderAndComments(t *testing.T) {
	res, err := CreateParser(&ParserConf{
		HeaderLines: 1,
		Comment:     '#',
		Columns:     []string{"a"},
	}).Parse(strings.NewReader("not json\n# skipped\n{\"a\": \"x\"}\n"))
	require.Nil(t, err)
	col, err := res.Column("a")
	require.Nil(t, err)
	require.Equal(t, []interface{}{"x"}, col)
}

func TestJSONLParserErrors(t *testing.T) {
	_, err := CreateParser(nil).Parse(strings.NewReader(people))
	require.NotNil(t, err)

	_, err = peopleParser().Parse(strings.NewReader("{\"name\": \"Sean\"\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "line 1")

	_, err = peopleParser().Parse(strings.NewReader("{\"name\": \"Sean\", \"meta\": {\"index\": \"one\"}}\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "meta.index")

	_, err = peopleParser().Parse(strings.NewReader("{\"name\": \"Sean\", \"meta\": {\"index\": 1e300}}\n"))
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "not an integer")

	_, err = CreateParser(&ParserConf{Columns: []string{"a"}, MaxBufferSize: 8}).Parse(strings.NewReader("{\"a\": \"a long value\"}\n"))
	require.NotNil(t, err)
}

func TestJSONLParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "people.jsonl")
	require.Nil(t, ioutil.WriteFile(path, []byte(people), 0644))
	res, err := peopleParser().ParseFile(path)
	require.Nil(t, err)
	require.Equal(t, 4, res.RowCount())
}
