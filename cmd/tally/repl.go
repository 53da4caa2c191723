package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/engine"
	"github.com/razeghi71/tally/session"
	"github.com/razeghi71/tally/table"
)

const replHelp = `commands:
  show [n]                      print the current table (first n rows)
  columns                       list columns and their types
  filter col||op||value         keep matching rows
  group col agg [agg...]        group by col, e.g. group category count sum(value)
  sort col [asc|desc]           sort by col, nulls last
  head n                        keep the first n rows
  stat op col                   sum, average, max or min of col
  pie category value            sum value per category
  history                       list applied operations
  restore                       drop every applied operation
  exit                          leave`

// runREPL reads commands from in until exit or end of input. Command errors
// are printed and do not end the loop.
func runREPL(in io.Reader, out io.Writer, s *session.Session, p printer, interactive bool) error {
	reader := bufio.NewReader(in)
	if interactive {
		fmt.Fprintf(out, "%d rows, %d columns. Type 'help' for commands.\n", s.Original().Len(), len(s.Original().Columns))
	}

	for {
		if interactive {
			fmt.Fprint(out, "> ")
		}

		input, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return err
		}
		line := strings.TrimSpace(input)
		if line != "" {
			if quit := evalLine(line, out, s, p); quit {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

func evalLine(line string, out io.Writer, s *session.Session, p printer) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	var (
		result *table.Table
		err    error
	)
	switch strings.ToLower(cmd) {
	case "exit", "quit":
		return true
	case "help":
		fmt.Fprintln(out, replHelp)
		return false
	case "show":
		result = s.Current()
		if len(args) > 0 {
			var n int
			if n, err = strconv.Atoi(args[0]); err == nil {
				result = result.Head(n)
			}
		}
	case "columns":
		result = columnsTable(s.Current(), false)
	case "filter":
		var c ast.Condition
		if c, err = ast.ParseCondition(rest); err == nil {
			result, err = s.Apply(&ast.FilterOp{Conditions: []ast.Condition{c}})
		}
	case "group":
		result, err = applyGroup(s, args)
	case "sort":
		result, err = applySort(s, args)
	case "head":
		var n int
		if len(args) != 1 {
			err = table.Errorf(table.ErrConfig, "usage: head n")
		} else if n, err = strconv.Atoi(args[0]); err == nil {
			result, err = s.Apply(&ast.HeadOp{N: n})
		}
	case "stat":
		if len(args) != 2 {
			err = table.Errorf(table.ErrConfig, "usage: stat op col")
			break
		}
		var op engine.StatOp
		if op, err = engine.ParseStatOp(args[0]); err == nil {
			result, err = statTable(s.Current(), op, args[1])
		}
	case "pie":
		if len(args) != 2 {
			err = table.Errorf(table.ErrConfig, "usage: pie category value")
			break
		}
		result, err = pieTable(s.Current(), args[0], args[1])
	case "history":
		if src := s.Source(); src != nil {
			fmt.Fprintf(out, "source %s\n", src.Filename)
		}
		for i, op := range s.History() {
			fmt.Fprintf(out, "%d. %s\n", i+1, describe(op))
		}
		return false
	case "restore":
		result = s.Restore()
	default:
		err = table.Errorf(table.ErrConfig, "unknown command %q, type 'help'", cmd)
	}

	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return false
	}
	if err := p(out, result); err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	return false
}

func applyGroup(s *session.Session, args []string) (*table.Table, error) {
	if len(args) < 2 {
		return nil, table.Errorf(table.ErrConfig, "usage: group col agg [agg...]")
	}
	aggs, err := parseAggregations(args[1:])
	if err != nil {
		return nil, err
	}
	return s.Apply(&ast.GroupOp{Column: args[0], Aggregations: aggs})
}

func applySort(s *session.Session, args []string) (*table.Table, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, table.Errorf(table.ErrConfig, "usage: sort col [asc|desc]")
	}
	op := &ast.SortOp{Column: args[0]}
	if len(args) == 2 {
		switch strings.ToLower(args[1]) {
		case "asc":
		case "desc":
			op.Desc = true
		default:
			return nil, table.Errorf(table.ErrConfig, "sort direction must be asc or desc, got %q", args[1])
		}
	}
	return s.Apply(op)
}

func describe(op ast.Op) string {
	switch o := op.(type) {
	case *ast.FilterOp:
		parts := make([]string, len(o.Conditions))
		for i, c := range o.Conditions {
			parts[i] = c.String()
		}
		return "filter " + strings.Join(parts, " ")
	case *ast.GroupOp:
		labels := make([]string, len(o.Aggregations))
		for i, a := range o.Aggregations {
			labels[i] = engine.Label(a)
		}
		return "group " + o.Column + " " + strings.Join(labels, " ")
	case *ast.SortOp:
		if o.Desc {
			return "sort " + o.Column + " desc"
		}
		return "sort " + o.Column
	case *ast.HeadOp:
		return "head " + strconv.Itoa(o.N)
	}
	return fmt.Sprintf("%T", op)
}
