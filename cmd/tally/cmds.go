package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/engine"
	"github.com/razeghi71/tally/loader"
	"github.com/razeghi71/tally/session"
	"github.com/razeghi71/tally/table"
)

func fatal(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(os.Stderr, "Error: %s\n", msg)
	os.Exit(1)
}

// Represents the state used when processing a command.
type Action struct {
	cmd    *cobra.Command
	out    io.Writer
	logger *slog.Logger
}

func newAction(cmd *cobra.Command) *Action {
	a := &Action{cmd: cmd, out: cmd.OutOrStdout()}
	level, err := parseLevel(a.getString("log-level"))
	if err != nil {
		fatal("%v", err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if _, err := a.printer(); err != nil {
		fatal("%v", err)
	}
	return a
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, table.Errorf(table.ErrConfig, "invalid log level %q", s)
	}
	return level, nil
}

func (a *Action) getBool(name string) bool {
	result, _ := a.cmd.Flags().GetBool(name)
	return result
}

func (a *Action) getInt(name string) int {
	result, _ := a.cmd.Flags().GetInt(name)
	return result
}

func (a *Action) getString(name string) string {
	result, _ := a.cmd.Flags().GetString(name)
	return result
}

func (a *Action) getStringArray(name string) []string {
	result, _ := a.cmd.Flags().GetStringArray(name)
	return result
}

func (a *Action) loadOptions() ([]loader.Option, error) {
	opts := []loader.Option{loader.WithLogger(a.logger)}
	if d := a.getString("delimiter"); d != "" {
		r, err := loader.ParseDelimiter(d)
		if err != nil {
			return nil, err
		}
		opts = append(opts, loader.WithDelimiter(r))
	}
	return opts, nil
}

func (a *Action) load(filename string) *table.Table {
	opts, err := a.loadOptions()
	if err != nil {
		a.Exit(err)
	}
	t, err := loader.Load(filename, opts...)
	if err != nil {
		a.Exit(err)
	}
	return t
}

func (a *Action) engineOptions() []engine.Option {
	opts := []engine.Option{engine.WithLogger(a.logger)}
	if a.cmd.Flags().Lookup("typed") != nil && a.getBool("typed") {
		opts = append(opts, engine.WithTypedResults())
	}
	return opts
}

func (a *Action) printer() (printer, error) {
	return newPrinter(a.getString("format"), a.csvDelimiter())
}

// csvDelimiter is the delimiter used for --format csv output.
func (a *Action) csvDelimiter() rune {
	if d := a.getString("delimiter"); d != "" {
		if r, err := loader.ParseDelimiter(d); err == nil {
			return r
		}
	}
	return ','
}

func (a *Action) show(t *table.Table) {
	p, _ := a.printer()
	if err := p(a.out, t); err != nil {
		a.Exit(err)
	}
}

// Exit reports err and terminates the command. The stack recorded when the
// error was created is logged at debug level.
func (a *Action) Exit(err error) {
	var te *table.Error
	if errors.As(err, &te) {
		a.logger.Debug("command failed", "kind", te.Kind.Error(), "stack", fmt.Sprintf("%+v", te.Err))
	}
	fatal("%s", strings.TrimRight(err.Error(), "\r\n"))
}

func showTable(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	t := action.load(args[0])
	if n := action.getInt("head"); n > 0 {
		t = t.Head(n)
	}
	action.show(t)
}

func listColumns(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	t := action.load(args[0])
	action.show(columnsTable(t, action.getBool("numeric")))
}

// columnsTable describes every column: the row-0 type filters and charts
// use and the type that holds for every row.
func columnsTable(t *table.Table, numericOnly bool) *table.Table {
	cols := t.Columns
	if numericOnly {
		cols = engine.NumericColumns(t)
	}
	out := table.NewTable([]string{"column", "type", "inferred", "operators"})
	for _, c := range cols {
		typ := t.ColumnType(c)
		ops := make([]string, 0, len(engine.OperatorsFor(typ)))
		for _, op := range engine.OperatorsFor(typ) {
			ops = append(ops, string(op))
		}
		out.AddRow([]table.Value{
			table.StrVal(c),
			table.StrVal(typ.String()),
			table.StrVal(t.InferredColumnType(c).String()),
			table.StrVal(strings.Join(ops, " ")),
		})
	}
	return out
}

func filterTable(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	conds, err := ast.ParseConditions(action.getStringArray("where"))
	if err != nil {
		action.Exit(err)
	}
	t := action.load(args[0])
	result, err := engine.Filter(t, conds, action.engineOptions()...)
	if err != nil {
		action.Exit(err)
	}
	action.show(result)
}

func parseAggregations(specs []string) ([]ast.Aggregation, error) {
	aggs := make([]ast.Aggregation, 0, len(specs))
	for _, s := range specs {
		a, err := ast.ParseAggregation(s)
		if err != nil {
			return nil, err
		}
		aggs = append(aggs, a)
	}
	return aggs, nil
}

func groupTable(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	aggs, err := parseAggregations(action.getStringArray("agg"))
	if err != nil {
		action.Exit(err)
	}
	t := action.load(args[0])
	result, err := engine.GroupByAggregate(t, action.getString("by"), aggs, action.engineOptions()...)
	if err != nil {
		action.Exit(err)
	}
	action.show(result)
}

// statTable computes a statistic and presents it as a one-row table.
func statTable(t *table.Table, op engine.StatOp, col string) (*table.Table, error) {
	v, ok, err := engine.Statistic(t, op, col)
	if err != nil {
		return nil, err
	}
	out := table.NewTable([]string{"statistic", "value"})
	out.AddRow([]table.Value{
		table.StrVal(engine.StatLabel(op, col)),
		table.FloatVal(engine.OrNaN(v, ok)),
	})
	return out, nil
}

func statColumn(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	op, err := engine.ParseStatOp(action.getString("op"))
	if err != nil {
		action.Exit(err)
	}
	t := action.load(args[0])
	result, err := statTable(t, op, action.getString("column"))
	if err != nil {
		action.Exit(err)
	}
	action.show(result)
}

// pieTable presents pie slices as rows of category, value and share.
func pieTable(t *table.Table, category, value string) (*table.Table, error) {
	slices, err := engine.PieChart(t, category, value)
	if err != nil {
		return nil, err
	}
	out := table.NewTable([]string{"category", "value", "share"})
	for _, s := range slices {
		out.AddRow([]table.Value{table.StrVal(s.Category), table.FloatVal(s.Value), table.FloatVal(s.Share)})
	}
	return out, nil
}

func pieChart(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	t := action.load(args[0])
	result, err := pieTable(t, action.getString("category"), action.getString("value"))
	if err != nil {
		action.Exit(err)
	}
	action.show(result)
}

func repl(cmd *cobra.Command, args []string) {
	action := newAction(cmd)
	src := &ast.SourceOp{Filename: args[0]}
	if d := action.getString("delimiter"); d != "" {
		r, err := loader.ParseDelimiter(d)
		if err != nil {
			action.Exit(err)
		}
		src.Delimiter = r
	}
	s, err := session.Open(src, []loader.Option{loader.WithLogger(action.logger)}, engine.WithLogger(action.logger))
	if err != nil {
		action.Exit(err)
	}
	p, _ := action.printer()
	if err := runREPL(cmd.InOrStdin(), action.out, s, p, isTerminal(os.Stdin)); err != nil {
		action.Exit(errors.Wrap(err, "repl"))
	}
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}
