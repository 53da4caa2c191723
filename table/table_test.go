package table

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usersTable() *Table {
	t := NewTable([]string{"name", "age", "score", "active"})
	t.AddRow([]Value{StrVal("Alice"), IntVal(30), FloatVal(92.5), BoolVal(true)})
	t.AddRow([]Value{StrVal("Bob"), IntVal(25), Null(), BoolVal(false)})
	t.AddRow([]Value{StrVal("Carol"), Null(), FloatVal(88), BoolVal(true)})
	return t
}

func olderThan(n int64) Predicate {
	return func(r Row) bool {
		v := r.Field("age")
		return !v.IsNull() && v.Int > n
	}
}

func TestRowField(t *testing.T) {
	tbl := usersTable()
	row := tbl.Rows[0]
	assert.Equal(t, []string{"name", "age", "score", "active"}, row.Columns())
	assert.Equal(t, StrVal("Alice"), row.Field("name"))
	assert.Equal(t, TypeFloat, row.FieldType("score"))
	assert.True(t, row.Has("active"))
	assert.False(t, row.Has("Active"))
	assert.True(t, row.Field("missing").IsNull())
	assert.Equal(t, TypeNull, tbl.Rows[1].FieldType("score"))
}

func TestColumnType(t *testing.T) {
	tbl := usersTable()
	assert.Equal(t, TypeString, tbl.ColumnType("name"))
	assert.Equal(t, TypeInt, tbl.ColumnType("age"))
	assert.Equal(t, TypeFloat, tbl.ColumnType("score"))
	assert.Equal(t, TypeBool, tbl.ColumnType("active"))

	// null at row 0 falls back to STRING
	tbl2 := NewTable([]string{"x"})
	tbl2.AddRow([]Value{Null()})
	tbl2.AddRow([]Value{IntVal(1)})
	assert.Equal(t, TypeString, tbl2.ColumnType("x"))
	assert.Equal(t, TypeInt, tbl2.InferredColumnType("x"))

	assert.Equal(t, TypeString, NewTable([]string{"x"}).ColumnType("x"))
}

func TestInferredColumnType(t *testing.T) {
	tbl := NewTable([]string{"n"})
	tbl.AddRow([]Value{IntVal(1)})
	tbl.AddRow([]Value{FloatVal(1.5)})
	assert.Equal(t, TypeFloat, tbl.InferredColumnType("n"))

	tbl.AddRow([]Value{StrVal("x")})
	assert.Equal(t, TypeString, tbl.InferredColumnType("n"))
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tbl := usersTable()
	before := tbl.Clone()

	result := tbl.Filter(olderThan(26))
	require.Equal(t, 1, result.Len())
	assert.Equal(t, "Alice", result.Rows[0].Field("name").Str)
	assert.True(t, tbl.EqualRows(before))
	assert.Equal(t, 3, tbl.Len())
}

func TestFilterIdempotent(t *testing.T) {
	tbl := usersTable()
	p := olderThan(20)
	once := tbl.Filter(p)
	twice := once.Filter(p)
	assert.True(t, once.EqualRows(twice))
}

func TestFilterCountAgree(t *testing.T) {
	tbl := usersTable()
	for _, n := range []int64{0, 20, 26, 40} {
		p := olderThan(n)
		assert.Equal(t, tbl.Filter(p).Len(), tbl.Count(p))
	}
}

func TestSortByIsStable(t *testing.T) {
	tbl := NewTable([]string{"k", "i"})
	tbl.AddRow([]Value{IntVal(2), IntVal(0)})
	tbl.AddRow([]Value{IntVal(1), IntVal(1)})
	tbl.AddRow([]Value{IntVal(2), IntVal(2)})
	tbl.AddRow([]Value{IntVal(1), IntVal(3)})

	sorted := tbl.SortBy(func(a, b Row) int {
		return int(a.Field("k").Int - b.Field("k").Int)
	})
	var order []int64
	for _, r := range sorted.Rows {
		order = append(order, r.Field("i").Int)
	}
	assert.Equal(t, []int64{1, 3, 0, 2}, order)
	assert.Equal(t, int64(0), tbl.Rows[0].Field("i").Int, "input must keep its order")
}

func TestHead(t *testing.T) {
	tbl := usersTable()
	assert.Equal(t, 2, tbl.Head(2).Len())
	assert.Equal(t, 3, tbl.Head(10).Len())
	assert.Equal(t, 0, tbl.Head(-1).Len())

	// appending to a head result must not clobber the source
	h := tbl.Head(1)
	h.AddRow([]Value{StrVal("Zed"), IntVal(1), Null(), Null()})
	assert.Equal(t, "Bob", tbl.Rows[1].Field("name").Str)
}

func TestMatchers(t *testing.T) {
	tbl := usersTable()
	active := func(r Row) bool { b, _ := r.Field("active").AsBool(); return b }

	row, ok := tbl.FindFirst(active)
	require.True(t, ok)
	assert.Equal(t, "Alice", row.Field("name").Str)

	row, ok = tbl.FindAny(func(r Row) bool { return !active(r) })
	require.True(t, ok)
	assert.Equal(t, "Bob", row.Field("name").Str)

	_, ok = tbl.FindFirst(olderThan(100))
	assert.False(t, ok)

	assert.True(t, tbl.AnyMatch(active))
	assert.False(t, tbl.AllMatch(active))
	assert.False(t, tbl.NoneMatch(active))
	assert.True(t, tbl.NoneMatch(olderThan(100)))
	assert.True(t, NewTable(nil).AllMatch(active))
}

func TestMapReduce(t *testing.T) {
	tbl := usersTable()
	names := Map(tbl, func(r Row) string { return r.Field("name").Str })
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, names)

	joined := Reduce(tbl, "", func(acc string, r Row) string {
		return acc + strings.ToLower(r.Field("name").Str[:1])
	}, nil)
	assert.Equal(t, "abc", joined)
}

func TestGroupBy(t *testing.T) {
	tbl := usersTable()
	counts := GroupBy(tbl, func(r Row) Value { return r.Field("active") }, func(p *Table) int { return p.Len() })
	assert.Equal(t, map[Value]int{BoolVal(true): 2, BoolVal(false): 1}, counts)

	parts := Partitions(tbl, func(r Row) Value { return r.Field("active") })
	require.Len(t, parts, 2)
	assert.Equal(t, BoolVal(true), parts[0].Key)
	assert.Equal(t, "Carol", parts[0].Rows.Rows[1].Field("name").Str)
}

func TestStatistics(t *testing.T) {
	tbl := usersTable()
	age := ColumnMapper("age")
	assert.Equal(t, 55.0, tbl.Sum(age))
	assert.InDelta(t, 55.0/3, tbl.Average(age), 1e-9)

	maxV, ok := tbl.Max(age)
	require.True(t, ok)
	assert.Equal(t, 30.0, maxV)

	minV, ok := tbl.Min(age)
	require.True(t, ok)
	assert.Equal(t, 0.0, minV, "null contributes 0")

	names := ColumnMapper("name")
	assert.Equal(t, 0.0, tbl.Sum(names))
	assert.Equal(t, 0.0, tbl.Average(names))
}

func TestStatisticsOnEmptyTable(t *testing.T) {
	tbl := NewTable([]string{"x"})
	m := ColumnMapper("x")
	assert.Equal(t, 0.0, tbl.Sum(m))
	assert.Equal(t, 0.0, tbl.Average(m))
	_, ok := tbl.Max(m)
	assert.False(t, ok)
	_, ok = tbl.Min(m)
	assert.False(t, ok)
}

func TestErrorKinds(t *testing.T) {
	err := MissingColumn("filter", "x")
	assert.True(t, errors.Is(err, ErrSchema))
	assert.False(t, errors.Is(err, ErrConfig))
	assert.EqualError(t, err, `filter: column "x" not found`)

	cause := errors.New("boom")
	err = Wrapf(ErrIO, cause, "cannot open %s", "a.csv")
	assert.True(t, errors.Is(err, ErrIO))
	assert.True(t, errors.Is(err, cause))
	assert.EqualError(t, err, "cannot open a.csv: boom")
}
