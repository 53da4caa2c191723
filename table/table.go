package table

import (
	"strings"
)

// Row is a single row in a table: an ordered mapping from column name to
// value. Rows of one table share the column slice.
type Row struct {
	Values  []Value
	columns []string
}

// NewRow builds a standalone row. Columns and values are paired by index.
func NewRow(columns []string, values []Value) Row {
	return Row{Values: values, columns: columns}
}

// Columns returns the column names in order.
func (r Row) Columns() []string {
	return r.columns
}

func (r Row) index(name string) int {
	for i, c := range r.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the row has a field with this name.
func (r Row) Has(name string) bool {
	i := r.index(name)
	return i >= 0 && i < len(r.Values)
}

// Field returns the value of a field, or null when the field is absent.
func (r Row) Field(name string) Value {
	i := r.index(name)
	if i < 0 || i >= len(r.Values) {
		return Null()
	}
	return r.Values[i]
}

// FieldType returns the inferred type of a field. Null fields report TypeNull.
func (r Row) FieldType(name string) ValueType {
	return r.Field(name).Type
}

// Table is the core data structure: columns + rows.
// Tables are treated as immutable once built; every query returns a new Table.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	return &Table{
		Columns: columns,
		Rows:    nil,
	}
}

// ColIndex returns the index of a column by name, or -1.
func (t *Table) ColIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// HasColumn reports whether the table has a column with this name.
func (t *Table) HasColumn(name string) bool {
	return t.ColIndex(name) >= 0
}

// AddRow appends a row to the table. Only meant for building a table.
func (t *Table) AddRow(values []Value) {
	t.Rows = append(t.Rows, Row{Values: values, columns: t.Columns})
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Get returns the value at a given row and column name.
func (t *Table) Get(row int, col string) Value {
	if row < 0 || row >= len(t.Rows) {
		return Null()
	}
	return t.Rows[row].Field(col)
}

// ColumnType returns the type of a column as observed at row 0. A missing
// column, an empty table or a null first cell all report STRING.
func (t *Table) ColumnType(col string) ValueType {
	if len(t.Rows) == 0 {
		return TypeString
	}
	typ := t.Rows[0].FieldType(col)
	if typ == TypeNull {
		return TypeString
	}
	return typ
}

// InferredColumnType returns the least upper bound of a column's types
// across all rows. A column holding only nulls reports TypeNull.
func (t *Table) InferredColumnType(col string) ValueType {
	typ := TypeNull
	for _, r := range t.Rows {
		typ = Promote(typ, r.FieldType(col))
	}
	return typ
}

// withRows returns a table over the same columns holding the given rows.
// Row storage is shared with the receiver.
func (t *Table) withRows(rows []Row) *Table {
	return &Table{Columns: t.Columns, Rows: rows}
}

// Clone creates a deep copy of the table structure (shares Value data).
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)
	rows := make([]Row, len(t.Rows))
	for i, r := range t.Rows {
		vals := make([]Value, len(r.Values))
		copy(vals, r.Values)
		rows[i] = Row{Values: vals, columns: cols}
	}
	return &Table{Columns: cols, Rows: rows}
}

// EqualRows reports whether both tables hold the same rows under value
// equality, column by column.
func (t *Table) EqualRows(o *Table) bool {
	if len(t.Rows) != len(o.Rows) || len(t.Columns) != len(o.Columns) {
		return false
	}
	for i, c := range t.Columns {
		if o.Columns[i] != c {
			return false
		}
	}
	for i := range t.Rows {
		a, b := t.Rows[i].Values, o.Rows[i].Values
		if len(a) != len(b) {
			return false
		}
		for j := range a {
			if !Equal(a[j], b[j]) {
				return false
			}
		}
	}
	return true
}

// String returns a compact representation of the table.
func (t *Table) String() string {
	if len(t.Rows) == 0 {
		return "[" + strings.Join(t.Columns, ", ") + "] (0 rows)"
	}

	var sb strings.Builder
	sb.WriteString("[ ")
	for i, r := range t.Rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{")
		for j, v := range r.Values {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(t.Columns[j])
			sb.WriteString(":")
			sb.WriteString(v.AsString())
		}
		sb.WriteString("}")
	}
	sb.WriteString(" ]")
	return sb.String()
}
