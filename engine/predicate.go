package engine

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/table"
)

var (
	numericOps = []ast.Operator{ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte, ast.OpEq, ast.OpNeq}
	stringOps  = []ast.Operator{ast.OpContains, ast.OpStartsWith, ast.OpEndsWith, ast.OpEq, ast.OpNeq}
	boolOps    = []ast.Operator{ast.OpEq, ast.OpNeq}
)

// OperatorsFor returns the operators a column of the given type accepts.
func OperatorsFor(typ table.ValueType) []ast.Operator {
	switch typ {
	case table.TypeInt, table.TypeFloat:
		return numericOps
	case table.TypeBool:
		return boolOps
	default:
		return stringOps
	}
}

// Compile turns a condition into a row predicate. The column type is taken
// from row 0 of t; a null field never satisfies the predicate.
func Compile(t *table.Table, c ast.Condition) (table.Predicate, error) {
	if !t.HasColumn(c.Column) {
		return nil, table.MissingColumn("filter", c.Column)
	}

	typ := t.ColumnType(c.Column)
	if !supports(typ, c.Op) {
		return nil, table.Errorf(table.ErrConfig, "filter: operator %q not supported for %s column %q", c.Op, typ, c.Column)
	}

	lit := strings.TrimSpace(c.Literal)
	switch typ {
	case table.TypeInt:
		n, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return nil, table.Errorf(table.ErrConfig, "filter: invalid INTEGER literal %q for column %q", c.Literal, c.Column)
		}
		return intPredicate(c.Column, c.Op, n), nil
	case table.TypeFloat:
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			return nil, table.Errorf(table.ErrConfig, "filter: invalid DOUBLE literal %q for column %q", c.Literal, c.Column)
		}
		return floatPredicate(c.Column, c.Op, f), nil
	case table.TypeBool:
		var b bool
		switch strings.ToLower(lit) {
		case "true":
			b = true
		case "false":
		default:
			return nil, table.Errorf(table.ErrConfig, "filter: invalid BOOLEAN literal %q for column %q", c.Literal, c.Column)
		}
		return boolPredicate(c.Column, c.Op, b), nil
	default:
		return stringPredicate(c.Column, c.Op, lit), nil
	}
}

// CompileAll compiles conditions and combines them by conjunction.
func CompileAll(t *table.Table, conds []ast.Condition) (table.Predicate, error) {
	preds := make([]table.Predicate, 0, len(conds))
	for _, c := range conds {
		p, err := Compile(t, c)
		if err != nil {
			return nil, err
		}
		preds = append(preds, p)
	}
	return table.And(preds...), nil
}

func supports(typ table.ValueType, op ast.Operator) bool {
	for _, o := range OperatorsFor(typ) {
		if o == op {
			return true
		}
	}
	return false
}

func intPredicate(col string, op ast.Operator, n int64) table.Predicate {
	return func(r table.Row) bool {
		v := r.Field(col)
		switch v.Type {
		case table.TypeInt:
			return cmpResult(op, cmp.Compare(v.Int, n))
		case table.TypeFloat:
			return cmpResult(op, cmp.Compare(v.Float, float64(n)))
		default:
			return false
		}
	}
}

func floatPredicate(col string, op ast.Operator, f float64) table.Predicate {
	return func(r table.Row) bool {
		v, ok := r.Field(col).AsFloat()
		return ok && cmpResult(op, cmp.Compare(v, f))
	}
}

func boolPredicate(col string, op ast.Operator, b bool) table.Predicate {
	return func(r table.Row) bool {
		v, ok := r.Field(col).AsBool()
		if !ok {
			return false
		}
		if op == ast.OpEq {
			return v == b
		}
		return v != b
	}
}

// stringPredicate compares case-insensitively. Non-string cells in a string
// column are matched by their text form.
func stringPredicate(col string, op ast.Operator, lit string) table.Predicate {
	lit = strings.ToLower(lit)
	return func(r table.Row) bool {
		v := r.Field(col)
		if v.IsNull() {
			return false
		}
		s := strings.ToLower(v.String())
		switch op {
		case ast.OpContains:
			return strings.Contains(s, lit)
		case ast.OpStartsWith:
			return strings.HasPrefix(s, lit)
		case ast.OpEndsWith:
			return strings.HasSuffix(s, lit)
		case ast.OpEq:
			return s == lit
		case ast.OpNeq:
			return s != lit
		}
		return false
	}
}

func cmpResult(op ast.Operator, c int) bool {
	switch op {
	case ast.OpEq:
		return c == 0
	case ast.OpNeq:
		return c != 0
	case ast.OpLt:
		return c < 0
	case ast.OpGt:
		return c > 0
	case ast.OpLte:
		return c <= 0
	case ast.OpGte:
		return c >= 0
	}
	return false
}
