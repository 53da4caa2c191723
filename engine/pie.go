package engine

import (
	"github.com/razeghi71/tally/table"
)

// Slice is one category of a pie chart.
type Slice struct {
	Category string
	Value    float64
	// Share is Value as a fraction of the chart total, 0 when the total is 0.
	Share float64
}

// PieChart sums valueCol per distinct text of categoryCol, in first-seen
// order. Rows with a null category are skipped; a null or non-numeric
// value contributes 0, so a category with no numbers still gets a slice.
func PieChart(t *table.Table, categoryCol, valueCol string) ([]Slice, error) {
	for _, col := range []string{categoryCol, valueCol} {
		if !t.HasColumn(col) {
			return nil, table.MissingColumn("pie chart", col)
		}
	}

	present := t.Filter(func(r table.Row) bool {
		return !r.Field(categoryCol).IsNull()
	})
	parts := table.Partitions(present, func(r table.Row) string {
		return r.Field(categoryCol).String()
	})

	var total float64
	slices := make([]Slice, 0, len(parts))
	for _, p := range parts {
		sum := table.Reduce(p.Rows, 0.0, func(acc float64, r table.Row) float64 {
			v, _ := r.Field(valueCol).AsFloat()
			return acc + v
		}, nil)
		total += sum
		slices = append(slices, Slice{Category: p.Key, Value: sum})
	}
	if total != 0 {
		for i := range slices {
			slices[i].Share = slices[i].Value / total
		}
	}
	return slices, nil
}
