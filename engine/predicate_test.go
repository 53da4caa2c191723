package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/table"
)

func cond(col string, op ast.Operator, lit string) ast.Condition {
	return ast.Condition{Column: col, Op: op, Literal: lit}
}

func TestFilterConjunction(t *testing.T) {
	people := parse(t, peopleCSV)
	result, err := Filter(people, []ast.Condition{
		cond("age", ast.OpGt, "20"),
		cond("active", ast.OpEq, "true"),
	}, quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, names(result))
}

func TestStringOperatorsIgnoreCase(t *testing.T) {
	people := parse(t, peopleCSV)
	cases := []struct {
		cond ast.Condition
		want []string
	}{
		{cond("name", ast.OpContains, "ali"), []string{"Alice"}},
		{cond("name", ast.OpStartsWith, "CA"), []string{"Carol"}},
		{cond("name", ast.OpEndsWith, "B"), []string{"Bob"}},
		{cond("name", ast.OpEq, " bob "), []string{"Bob"}},
		{cond("name", ast.OpNeq, "bob"), []string{"Alice", "Carol"}},
	}
	for _, tc := range cases {
		result, err := Filter(people, []ast.Condition{tc.cond}, quiet())
		require.NoError(t, err, tc.cond.String())
		assert.Equal(t, tc.want, names(result), tc.cond.String())
	}
}

func TestNumericOperators(t *testing.T) {
	people := parse(t, peopleCSV)
	cases := []struct {
		cond ast.Condition
		want []string
	}{
		{cond("age", ast.OpLt, "30"), []string{"Bob"}},
		{cond("age", ast.OpLte, "30"), []string{"Alice", "Bob"}},
		{cond("age", ast.OpGte, "30"), []string{"Alice"}},
		{cond("age", ast.OpEq, "25"), []string{"Bob"}},
		{cond("age", ast.OpNeq, "25"), []string{"Alice"}},
		{cond("score", ast.OpGte, "88"), []string{"Alice", "Carol"}},
		{cond("score", ast.OpLt, "90.0"), []string{"Carol"}},
		{cond("active", ast.OpNeq, "TRUE"), []string{"Bob"}},
	}
	for _, tc := range cases {
		result, err := Filter(people, []ast.Condition{tc.cond}, quiet())
		require.NoError(t, err, tc.cond.String())
		assert.Equal(t, tc.want, names(result), tc.cond.String())
	}
}

func TestNullsNeverMatch(t *testing.T) {
	people := parse(t, peopleCSV)
	carol, _ := people.FindFirst(func(r table.Row) bool { return r.Field("name").Str == "Carol" })
	bob, _ := people.FindFirst(func(r table.Row) bool { return r.Field("name").Str == "Bob" })

	for _, op := range OperatorsFor(table.TypeInt) {
		p, err := Compile(people, cond("age", op, "0"))
		require.NoError(t, err)
		assert.False(t, p(carol), "age %s", op)
	}
	for _, op := range OperatorsFor(table.TypeFloat) {
		p, err := Compile(people, cond("score", op, "0"))
		require.NoError(t, err)
		assert.False(t, p(bob), "score %s", op)
	}

	blank := table.NewRow(people.Columns, []table.Value{table.Null(), table.Null(), table.Null(), table.Null()})
	for _, op := range OperatorsFor(table.TypeString) {
		p, err := Compile(people, cond("name", op, "x"))
		require.NoError(t, err)
		assert.False(t, p(blank), "name %s", op)
	}
	for _, op := range OperatorsFor(table.TypeBool) {
		p, err := Compile(people, cond("active", op, "true"))
		require.NoError(t, err)
		assert.False(t, p(blank), "active %s", op)
	}
}

func TestCompileErrors(t *testing.T) {
	people := parse(t, peopleCSV)

	_, err := Compile(people, cond("zip", ast.OpEq, "1"))
	assert.ErrorIs(t, err, table.ErrSchema)

	for _, c := range []ast.Condition{
		cond("age", ast.OpGt, "twenty"),
		cond("age", ast.OpGt, "20.5"),
		cond("score", ast.OpLt, "high"),
		cond("active", ast.OpEq, "yes"),
		cond("active", ast.OpGt, "true"),
		cond("age", ast.OpContains, "2"),
		cond("name", ast.OpGt, "A"),
	} {
		_, err := Compile(people, c)
		assert.ErrorIs(t, err, table.ErrConfig, c.String())
	}

	_, err = Filter(people, nil)
	assert.ErrorIs(t, err, table.ErrConfig)
}

func TestRowZeroNullMakesStringColumn(t *testing.T) {
	tbl := parse(t, "name,age\nAnn,\nBen,30\n")
	assert.Equal(t, table.TypeString, tbl.ColumnType("age"))

	_, err := Compile(tbl, cond("age", ast.OpGt, "20"))
	assert.ErrorIs(t, err, table.ErrConfig)

	result, err := Filter(tbl, []ast.Condition{cond("age", ast.OpEq, "30")}, quiet())
	require.NoError(t, err)
	assert.Equal(t, []string{"Ben"}, names(result))
}

func TestCompileOnEmptyTable(t *testing.T) {
	tbl := parse(t, "name,age\n")

	_, err := Compile(tbl, cond("age", ast.OpGt, "1"))
	assert.ErrorIs(t, err, table.ErrConfig)

	_, err = Compile(tbl, cond("zip", ast.OpEq, "1"))
	assert.ErrorIs(t, err, table.ErrSchema)

	result, err := Filter(tbl, []ast.Condition{cond("age", ast.OpEq, "1")}, quiet())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Len())
}

func TestFilterIdempotentAndMatchesCount(t *testing.T) {
	people := parse(t, peopleCSV)
	conds := []ast.Condition{cond("score", ast.OpGt, "80")}

	once, err := Filter(people, conds, quiet())
	require.NoError(t, err)
	twice, err := Filter(once, conds, quiet())
	require.NoError(t, err)
	assert.True(t, once.EqualRows(twice))

	pred, err := CompileAll(people, conds)
	require.NoError(t, err)
	assert.Equal(t, people.Count(pred), once.Len())
}
