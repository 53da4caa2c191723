package engine

import (
	"strings"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/table"
)

// ListSep joins the distinct values produced by the List aggregation.
const ListSep = ", "

// Result is one labelled aggregation value within a group.
type Result struct {
	Label string
	Value table.Value
}

// Group is one partition of a group-by and its aggregation results, in the
// order the aggregations were requested.
type Group struct {
	Key     table.Value
	Rows    int
	Results []Result
}

// Aggregate partitions t by groupCol and applies every aggregation to each
// partition. Groups come back in first-seen order; null keys form their own
// group. Results are native values: Count is INTEGER, the numeric
// functions are DOUBLE and List is STRING. An unknown function is logged and
// yields a null result.
func Aggregate(t *table.Table, groupCol string, aggs []ast.Aggregation, opts ...Option) ([]Group, error) {
	cfg := applyOptions(opts)
	if len(aggs) == 0 {
		return nil, table.Errorf(table.ErrConfig, "group: no aggregations")
	}
	if !t.HasColumn(groupCol) {
		return nil, table.MissingColumn("group", groupCol)
	}
	for _, a := range aggs {
		if a.Func == ast.AggCount || !known(a.Func) {
			continue
		}
		if !t.HasColumn(a.Column) {
			return nil, table.MissingColumn("group", a.Column)
		}
	}
	for _, a := range aggs {
		if !known(a.Func) {
			cfg.logger.Warn("unsupported aggregation function", "function", string(a.Func), "column", a.Column)
		}
	}

	parts := table.Partitions(t, func(r table.Row) table.Value { return r.Field(groupCol) })
	groups := make([]Group, 0, len(parts))
	for _, p := range parts {
		g := Group{Key: p.Key, Rows: p.Rows.Len(), Results: make([]Result, 0, len(aggs))}
		for _, a := range aggs {
			g.Results = append(g.Results, Result{Label: Label(a), Value: aggregate(p.Rows, a)})
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// GroupByAggregate runs Aggregate and projects one row per group with the
// columns {groupCol, label...}. Values are rendered as strings unless
// WithTypedResults is given; a null key or placeholder stays null. When two
// aggregations share a label the column keeps its first position and the
// later value wins. A label equal to groupCol is rejected, since it would
// replace the group key.
func GroupByAggregate(t *table.Table, groupCol string, aggs []ast.Aggregation, opts ...Option) (*table.Table, error) {
	cfg := applyOptions(opts)
	columns := []string{groupCol}
	slot := map[string]int{groupCol: 0}
	for _, a := range aggs {
		l := Label(a)
		if l == groupCol {
			return nil, table.Errorf(table.ErrConfig, "group: aggregation label %q clashes with the group column", l)
		}
		if _, ok := slot[l]; !ok {
			slot[l] = len(columns)
			columns = append(columns, l)
		}
	}

	groups, err := Aggregate(t, groupCol, aggs, opts...)
	if err != nil {
		return nil, err
	}

	out := table.NewTable(columns)
	for _, g := range groups {
		vals := make([]table.Value, len(columns))
		vals[0] = render(g.Key, cfg.typed)
		for _, r := range g.Results {
			vals[slot[r.Label]] = render(r.Value, cfg.typed)
		}
		out.AddRow(vals)
	}
	return out, nil
}

func known(f ast.AggFunc) bool {
	for _, k := range ast.AggFuncs {
		if k == f {
			return true
		}
	}
	return false
}

func aggregate(rows *table.Table, a ast.Aggregation) table.Value {
	m := table.ColumnMapper(a.Column)
	switch a.Func {
	case ast.AggCount:
		return table.IntVal(int64(rows.Len()))
	case ast.AggSum:
		return table.FloatVal(rows.Sum(m))
	case ast.AggAverage:
		return table.FloatVal(rows.Average(m))
	case ast.AggMax:
		v, _ := rows.Max(m)
		return table.FloatVal(v)
	case ast.AggMin:
		v, _ := rows.Min(m)
		return table.FloatVal(v)
	case ast.AggList:
		return table.StrVal(distinct(rows, a.Column))
	}
	return table.Null()
}

// distinct joins the text of the non-null cells of col, first-seen order.
func distinct(rows *table.Table, col string) string {
	seen := make(map[string]bool)
	var parts []string
	for _, r := range rows.Rows {
		v := r.Field(col)
		if v.IsNull() {
			continue
		}
		s := v.String()
		if seen[s] {
			continue
		}
		seen[s] = true
		parts = append(parts, s)
	}
	return strings.Join(parts, ListSep)
}

func render(v table.Value, typed bool) table.Value {
	if typed || v.IsNull() {
		return v
	}
	return table.StrVal(v.String())
}
