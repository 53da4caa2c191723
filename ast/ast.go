package ast

// Operator is a comparison token in a filter condition.
type Operator string

const (
	OpLt         Operator = "<"
	OpGt         Operator = ">"
	OpLte        Operator = "<="
	OpGte        Operator = ">="
	OpEq         Operator = "="
	OpNeq        Operator = "!="
	OpContains   Operator = "Contains"
	OpStartsWith Operator = "Starts With"
	OpEndsWith   Operator = "Ends With"
)

// Operators lists every operator token in display order.
var Operators = []Operator{OpLt, OpGt, OpLte, OpGte, OpEq, OpNeq, OpContains, OpStartsWith, OpEndsWith}

// Condition is a single filter condition: column, operator and the literal
// text to compare against. The literal is interpreted by the column's type.
type Condition struct {
	Column  string
	Op      Operator
	Literal string
}

// ConditionSep separates the three parts of a serialised condition.
// Operator tokens may contain spaces, so a space cannot be used.
const ConditionSep = "||"

// String returns the serialised form "column||operator||value".
func (c Condition) String() string {
	return c.Column + ConditionSep + string(c.Op) + ConditionSep + c.Literal
}

// AggFunc names an aggregation function.
type AggFunc string

const (
	AggCount   AggFunc = "Count"
	AggSum     AggFunc = "Sum"
	AggAverage AggFunc = "Average"
	AggMax     AggFunc = "Max"
	AggMin     AggFunc = "Min"
	AggList    AggFunc = "List"
)

// AggFuncs lists the supported aggregation functions.
var AggFuncs = []AggFunc{AggCount, AggSum, AggAverage, AggMax, AggMin, AggList}

// Aggregation applies Func to Column within every group. Column is ignored by Count.
type Aggregation struct {
	Func   AggFunc
	Column string
}

// --- Operations (pipeline stages) ---

// Op represents a single operation in the pipeline.
type Op interface {
	opNode()
}

// SourceOp represents the input file reference.
type SourceOp struct {
	Filename  string
	Delimiter rune
}

func (o *SourceOp) opNode() {}

// FilterOp keeps rows satisfying every condition.
type FilterOp struct {
	Conditions []Condition
}

func (o *FilterOp) opNode() {}

// GroupOp groups rows by a column and computes aggregations per group.
type GroupOp struct {
	Column       string
	Aggregations []Aggregation
}

func (o *GroupOp) opNode() {}

// SortOp sorts rows by a column.
type SortOp struct {
	Column string
	Desc   bool
}

func (o *SortOp) opNode() {}

// HeadOp returns the first N rows.
type HeadOp struct {
	N int
}

func (o *HeadOp) opNode() {}

// Query represents a full query: source + pipeline of operations.
type Query struct {
	Source *SourceOp
	Ops    []Op
}
