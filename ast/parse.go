package ast

import (
	"strings"

	"github.com/razeghi71/tally/table"
)

// ParseOperator matches an operator token. Word operators are matched
// case-insensitively and with any run of spaces between words.
func ParseOperator(s string) (Operator, error) {
	norm := strings.Join(strings.Fields(s), " ")
	for _, op := range Operators {
		if strings.EqualFold(norm, string(op)) {
			return op, nil
		}
	}
	return "", table.Errorf(table.ErrConfig, "unknown operator %q", s)
}

// ParseCondition parses the serialised form "column||operator||value".
// Anything after the second separator belongs to the value.
func ParseCondition(s string) (Condition, error) {
	parts := strings.SplitN(s, ConditionSep, 3)
	if len(parts) != 3 {
		return Condition{}, table.Errorf(table.ErrConfig, "invalid condition %q: expected column%soperator%svalue", s, ConditionSep, ConditionSep)
	}
	col := strings.TrimSpace(parts[0])
	if col == "" {
		return Condition{}, table.Errorf(table.ErrConfig, "invalid condition %q: empty column", s)
	}
	op, err := ParseOperator(parts[1])
	if err != nil {
		return Condition{}, err
	}
	return Condition{Column: col, Op: op, Literal: strings.TrimSpace(parts[2])}, nil
}

// ParseConditions parses a list of serialised conditions.
func ParseConditions(ss []string) ([]Condition, error) {
	conds := make([]Condition, 0, len(ss))
	for _, s := range ss {
		c, err := ParseCondition(s)
		if err != nil {
			return nil, err
		}
		conds = append(conds, c)
	}
	return conds, nil
}

// ParseAggFunc matches a function name case-insensitively. Unknown names
// are returned as given, since the aggregation driver reports them itself.
func ParseAggFunc(s string) AggFunc {
	s = strings.TrimSpace(s)
	for _, fn := range AggFuncs {
		if strings.EqualFold(s, string(fn)) {
			return fn
		}
	}
	return AggFunc(s)
}

// ParseAggregation accepts "Func(column)", "Func:column" or a bare "Func".
func ParseAggregation(s string) (Aggregation, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Aggregation{}, table.Errorf(table.ErrConfig, "empty aggregation")
	}

	var fn, col string
	switch {
	case strings.HasSuffix(s, ")") && strings.Contains(s, "("):
		i := strings.Index(s, "(")
		fn, col = s[:i], s[i+1:len(s)-1]
	case strings.Contains(s, ":"):
		fn, col, _ = strings.Cut(s, ":")
	default:
		fn = s
	}

	agg := Aggregation{Func: ParseAggFunc(fn), Column: strings.TrimSpace(col)}
	if agg.Func == "" {
		return Aggregation{}, table.Errorf(table.ErrConfig, "invalid aggregation %q: empty function", s)
	}
	if agg.Func != AggCount && agg.Column == "" {
		return Aggregation{}, table.Errorf(table.ErrConfig, "aggregation %s needs a column", agg.Func)
	}
	return agg, nil
}
