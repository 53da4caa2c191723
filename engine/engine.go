package engine

import (
	"strings"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/table"
)

// Execute runs a full query pipeline on the given input table. The input is
// never modified; every stage produces a new table.
func Execute(query *ast.Query, input *table.Table, opts ...Option) (*table.Table, error) {
	current := input
	for _, op := range query.Ops {
		var err error
		current, err = execOp(op, current, opts)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}

func execOp(op ast.Op, t *table.Table, opts []Option) (*table.Table, error) {
	switch o := op.(type) {
	case *ast.HeadOp:
		return execHead(o, t)
	case *ast.SortOp:
		return execSort(o, t)
	case *ast.FilterOp:
		return Filter(t, o.Conditions, opts...)
	case *ast.GroupOp:
		return GroupByAggregate(t, o.Column, o.Aggregations, opts...)
	default:
		return nil, table.Errorf(table.ErrConfig, "unknown operation type %T", op)
	}
}

func execHead(o *ast.HeadOp, t *table.Table) (*table.Table, error) {
	if o.N < 0 {
		return nil, table.Errorf(table.ErrConfig, "head: negative row count %d", o.N)
	}
	return t.Head(o.N), nil
}

func execSort(o *ast.SortOp, t *table.Table) (*table.Table, error) {
	if !t.HasColumn(o.Column) {
		return nil, table.MissingColumn("sort", o.Column)
	}
	return t.SortBy(func(a, b table.Row) int {
		av, bv := a.Field(o.Column), b.Field(o.Column)
		// Nulls sort last in either direction.
		if av.IsNull() || bv.IsNull() {
			return compareValues(av, bv)
		}
		if o.Desc {
			return compareValues(bv, av)
		}
		return compareValues(av, bv)
	}), nil
}

// compareValues orders nulls last, numbers before everything else and the
// rest by text.
func compareValues(a, b table.Value) int {
	if a.IsNull() && b.IsNull() {
		return 0
	}
	if a.IsNull() {
		return 1
	}
	if b.IsNull() {
		return -1
	}

	af, aok := a.AsFloat()
	bf, bok := b.AsFloat()
	switch {
	case aok && bok:
		if a.Type == table.TypeInt && b.Type == table.TypeInt {
			return cmpInt(a.Int, b.Int)
		}
		if af < bf {
			return -1
		}
		if af > bf {
			return 1
		}
		return 0
	case aok:
		return -1
	case bok:
		return 1
	}

	return strings.Compare(a.String(), b.String())
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
