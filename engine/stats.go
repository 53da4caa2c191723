package engine

import (
	"math"
	"strings"

	"github.com/razeghi71/tally/table"
)

// StatOp is a whole-column statistic.
type StatOp string

const (
	StatSum     StatOp = "Sum"
	StatAverage StatOp = "Average"
	StatMax     StatOp = "Max"
	StatMin     StatOp = "Min"
)

// StatOps lists the supported statistics.
var StatOps = []StatOp{StatSum, StatAverage, StatMax, StatMin}

// ParseStatOp matches a statistic name case-insensitively.
func ParseStatOp(s string) (StatOp, error) {
	s = strings.TrimSpace(s)
	for _, op := range StatOps {
		if strings.EqualFold(s, string(op)) {
			return op, nil
		}
	}
	return "", table.Errorf(table.ErrConfig, "unknown statistic %q", s)
}

// Statistic computes op over every cell of col. Non-numeric cells count as
// 0. The boolean is false only for Max and Min on an empty table.
func Statistic(t *table.Table, op StatOp, col string) (float64, bool, error) {
	if !t.HasColumn(col) {
		return 0, false, table.MissingColumn("statistic", col)
	}
	m := table.ColumnMapper(col)
	switch op {
	case StatSum:
		return t.Sum(m), true, nil
	case StatAverage:
		return t.Average(m), true, nil
	case StatMax:
		v, ok := t.Max(m)
		return v, ok, nil
	case StatMin:
		v, ok := t.Min(m)
		return v, ok, nil
	}
	return 0, false, table.Errorf(table.ErrConfig, "unknown statistic %q", op)
}

// OrNaN renders an absent statistic as NaN.
func OrNaN(v float64, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	return v
}
