package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razeghi71/tally/engine"
	"github.com/razeghi71/tally/loader"
	"github.com/razeghi71/tally/session"
	"github.com/razeghi71/tally/table"
)

const salesCSV = `category,value
A,10
A,20
B,5
B,15
B,30
`

func newSession(t *testing.T) *session.Session {
	t.Helper()
	tbl, err := loader.ParseCSV(strings.NewReader(salesCSV), ',')
	require.NoError(t, err)
	return session.New(tbl, engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func runScript(t *testing.T, s *session.Session, script string) string {
	t.Helper()
	p, err := newPrinter("csv", ',')
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, runREPL(strings.NewReader(script), &out, s, p, false))
	return out.String()
}

func TestREPLFilterGroupRestore(t *testing.T) {
	s := newSession(t)
	out := runScript(t, s, "filter value||>=||15\ngroup category count sum(value)\n")

	assert.Contains(t, out, "category,value\nA,20\nB,15\nB,30\n")
	assert.Contains(t, out, "category,Count,Sum(Value)\nA,1,20.0\nB,2,45.0\n")
	assert.Len(t, s.History(), 2)

	out = runScript(t, s, "history\nrestore\n")
	assert.Contains(t, out, "1. filter value||>=||15\n2. group category Count Sum(Value)\n")
	assert.False(t, s.Modified())
}

func TestREPLSortHeadStatPie(t *testing.T) {
	s := newSession(t)
	out := runScript(t, s, "sort value desc\nhead 2\nstat average value\npie category value\n")

	assert.Contains(t, out, "category,value\nB,30\nA,20\n")
	assert.Contains(t, out, "statistic,value\nAverage of 'Value',25.0\n")
	assert.Contains(t, out, "category,value,share\nB,30.0,0.6\nA,20.0,0.4\n")
}

func TestREPLReportsErrorsAndContinues(t *testing.T) {
	s := newSession(t)
	out := runScript(t, s, "filter region||=||x\nfrobnicate\nsort value sideways\nhead 1\n")

	assert.Contains(t, out, `Error: filter: column "region" not found`)
	assert.Contains(t, out, `unknown command "frobnicate"`)
	assert.Contains(t, out, "sort direction must be asc or desc")
	assert.Contains(t, out, "category,value\nA,10\n")
	assert.Len(t, s.History(), 1)
}

func TestREPLStopsAtExit(t *testing.T) {
	s := newSession(t)
	runScript(t, s, "head 3\nexit\nhead 1\n")
	assert.Equal(t, 3, s.Current().Len())
}

func TestPrintTable(t *testing.T) {
	tbl := table.NewTable([]string{"name", "age"})
	tbl.AddRow([]table.Value{table.StrVal("Alice"), table.IntVal(30)})
	tbl.AddRow([]table.Value{table.StrVal("Bo"), table.Null()})

	var out bytes.Buffer
	require.NoError(t, printTable(&out, tbl))
	assert.Equal(t, "name  | age \n------+-----\nAlice | 30  \nBo    | null\n", out.String())
}

func TestPrintJSON(t *testing.T) {
	tbl := table.NewTable([]string{"k", "v"})
	tbl.AddRow([]table.Value{table.StrVal("a"), table.FloatVal(1.5)})
	tbl.AddRow([]table.Value{table.Null(), table.BoolVal(true)})

	var out bytes.Buffer
	require.NoError(t, printJSON(&out, tbl))
	assert.JSONEq(t, `{"columns":["k","v"],"rows":[["a",1.5],[null,true]]}`, out.String())
}

func TestNewPrinterRejectsUnknownFormat(t *testing.T) {
	_, err := newPrinter("xml", ',')
	assert.ErrorIs(t, err, table.ErrConfig)
}

func TestParseLevel(t *testing.T) {
	level, err := parseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	_, err = parseLevel("chatty")
	assert.ErrorIs(t, err, table.ErrConfig)
}

func TestColumnsTable(t *testing.T) {
	tbl, err := loader.ParseCSV(strings.NewReader("name,age\nAnn,\nBen,30\n"), ',')
	require.NoError(t, err)

	cols := columnsTable(tbl, false)
	assert.Equal(t, table.StrVal("STRING"), cols.Get(1, "type"))
	assert.Equal(t, table.StrVal("INTEGER"), cols.Get(1, "inferred"))
	assert.Equal(t, 0, columnsTable(tbl, true).Len())
}

func TestPieTableHeadersAreFixed(t *testing.T) {
	tbl, err := loader.ParseCSV(strings.NewReader("share,value\nx,1\ny,3\n"), ',')
	require.NoError(t, err)

	out, err := pieTable(tbl, "value", "value")
	require.NoError(t, err)
	assert.Equal(t, []string{"category", "value", "share"}, out.Columns)
	assert.Equal(t, table.StrVal("1"), out.Get(0, "category"))

	out, err = pieTable(tbl, "share", "value")
	require.NoError(t, err)
	assert.Equal(t, table.StrVal("y"), out.Get(1, "category"))
	assert.Equal(t, table.FloatVal(0.75), out.Get(1, "share"))
}
