package engine

import (
	"github.com/razeghi71/tally/table"
)

// NumericColumns returns the columns whose row-0 value is a number. A
// column that is null in row 0 is not numeric.
func NumericColumns(t *table.Table) []string {
	var cols []string
	for _, c := range t.Columns {
		if t.ColumnType(c).IsNumeric() {
			cols = append(cols, c)
		}
	}
	return cols
}
