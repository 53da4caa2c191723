package table

// Mapper extracts a number from a row.
type Mapper func(Row) float64

// ColumnMapper reads a column through Value.SafeFloat, so nulls and
// non-numeric cells contribute 0.
func ColumnMapper(col string) Mapper {
	return func(r Row) float64 {
		return r.Field(col).SafeFloat()
	}
}

// Sum returns the arithmetic sum of the mapped values, 0 on an empty table.
func (t *Table) Sum(m Mapper) float64 {
	var total float64
	for _, r := range t.Rows {
		total += m(r)
	}
	return total
}

// Average returns the arithmetic mean of the mapped values, 0 on an empty table.
func (t *Table) Average(m Mapper) float64 {
	if len(t.Rows) == 0 {
		return 0
	}
	return t.Sum(m) / float64(len(t.Rows))
}

// Max returns the largest mapped value; false on an empty table.
func (t *Table) Max(m Mapper) (float64, bool) {
	return t.extreme(m, func(a, b float64) bool { return a > b })
}

// Min returns the smallest mapped value; false on an empty table.
func (t *Table) Min(m Mapper) (float64, bool) {
	return t.extreme(m, func(a, b float64) bool { return a < b })
}

func (t *Table) extreme(m Mapper, better func(a, b float64) bool) (float64, bool) {
	if len(t.Rows) == 0 {
		return 0, false
	}
	best := m(t.Rows[0])
	for _, r := range t.Rows[1:] {
		if v := m(r); better(v, best) {
			best = v
		}
	}
	return best, true
}
