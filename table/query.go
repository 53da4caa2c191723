package table

import (
	"slices"
)

// Predicate reports whether a row satisfies a condition.
type Predicate func(Row) bool

// And combines predicates by logical conjunction. With no arguments the
// result accepts every row.
func And(preds ...Predicate) Predicate {
	return func(r Row) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// Filter returns a table keeping the rows for which pred is true, in order.
func (t *Table) Filter(pred Predicate) *Table {
	var rows []Row
	for _, r := range t.Rows {
		if pred(r) {
			rows = append(rows, r)
		}
	}
	return t.withRows(rows)
}

// SortBy returns a table with rows stably sorted by cmp, which must return
// a negative number when a sorts before b, zero when equal and positive otherwise.
func (t *Table) SortBy(cmp func(a, b Row) int) *Table {
	rows := slices.Clone(t.Rows)
	slices.SortStableFunc(rows, cmp)
	return t.withRows(rows)
}

// Head returns a table with the first n rows.
func (t *Table) Head(n int) *Table {
	n = max(0, min(n, len(t.Rows)))
	return t.withRows(t.Rows[:n:n])
}

// Count returns the number of rows matching pred.
func (t *Table) Count(pred Predicate) int {
	n := 0
	for _, r := range t.Rows {
		if pred(r) {
			n++
		}
	}
	return n
}

// FindFirst returns the first row matching pred.
func (t *Table) FindFirst(pred Predicate) (Row, bool) {
	for _, r := range t.Rows {
		if pred(r) {
			return r, true
		}
	}
	return Row{}, false
}

// FindAny returns some row matching pred. Rows are held in a slice, so this
// is always the first match.
func (t *Table) FindAny(pred Predicate) (Row, bool) {
	return t.FindFirst(pred)
}

// AllMatch reports whether every row matches pred. True on an empty table.
func (t *Table) AllMatch(pred Predicate) bool {
	for _, r := range t.Rows {
		if !pred(r) {
			return false
		}
	}
	return true
}

// AnyMatch reports whether at least one row matches pred.
func (t *Table) AnyMatch(pred Predicate) bool {
	_, ok := t.FindFirst(pred)
	return ok
}

// NoneMatch reports whether no row matches pred.
func (t *Table) NoneMatch(pred Predicate) bool {
	return !t.AnyMatch(pred)
}

// Map applies f to each row, in order.
func Map[R any](t *Table, f func(Row) R) []R {
	out := make([]R, len(t.Rows))
	for i, r := range t.Rows {
		out[i] = f(r)
	}
	return out
}

// Reduce folds rows left to right starting from identity. The combiner
// merges partial results of a split fold; a sequential fold never needs it,
// so it may be nil.
func Reduce[R any](t *Table, identity R, accumulate func(R, Row) R, combine func(R, R) R) R {
	acc := identity
	for _, r := range t.Rows {
		acc = accumulate(acc, r)
	}
	return acc
}

// Partition is a group of rows sharing a key, in original order.
type Partition[K comparable] struct {
	Key  K
	Rows *Table
}

// Partitions splits the table by key, keeping partitions in first-seen order.
func Partitions[K comparable](t *Table, key func(Row) K) []Partition[K] {
	var parts []Partition[K]
	index := make(map[K]int)
	for _, r := range t.Rows {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(parts)
			index[k] = i
			parts = append(parts, Partition[K]{Key: k, Rows: t.withRows(nil)})
		}
		parts[i].Rows.Rows = append(parts[i].Rows.Rows, r)
	}
	return parts
}

// GroupBy partitions rows by key and reduces every partition with collect.
func GroupBy[K comparable, U any](t *Table, key func(Row) K, collect func(*Table) U) map[K]U {
	out := make(map[K]U)
	for _, p := range Partitions(t, key) {
		out[p.Key] = collect(p.Rows)
	}
	return out
}
