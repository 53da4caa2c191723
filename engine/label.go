package engine

import (
	"strings"
	"unicode"

	"github.com/razeghi71/tally/ast"
)

// TitleCase capitalises each word and lowercases the rest. Spaces and
// underscores separate words; underscores become spaces.
//
//	unit_price -> Unit Price
func TitleCase(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	upper := true
	for _, r := range s {
		if unicode.IsSpace(r) || r == '_' {
			sb.WriteByte(' ')
			upper = true
			continue
		}
		if upper {
			sb.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return sb.String()
}

// Label names an aggregation result column: "<Func>(<Title Cased Column>)".
// Downstream consumers key on this exact text. Count without a column is
// labelled by the function name alone.
func Label(a ast.Aggregation) string {
	if a.Column == "" {
		return string(a.Func)
	}
	return string(a.Func) + "(" + TitleCase(a.Column) + ")"
}

// StatLabel describes a whole-column statistic, e.g. "Sum of 'Unit Price'".
func StatLabel(op StatOp, col string) string {
	return string(op) + " of '" + TitleCase(col) + "'"
}
