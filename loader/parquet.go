package loader

import (
	"io"
	"os"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/razeghi71/tally/table"
)

// loadParquet reads a flat Parquet file. Nested groups are not supported:
// every top-level field must be a leaf column.
func loadParquet(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot open %s", filename)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot stat %s", filename)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, table.Wrapf(table.ErrParse, err, "cannot read Parquet from %s", filename)
	}

	schema := pf.Schema()
	fields := schema.Fields()
	columns := make([]string, len(fields))
	leaf := make(map[int]int, len(fields)) // leaf column index -> table column
	for i, field := range fields {
		if !field.Leaf() {
			return nil, table.Errorf(table.ErrParse, "%s: nested Parquet column %q is not supported", filename, field.Name())
		}
		columns[i] = field.Name()
		col, ok := schema.Lookup(field.Name())
		if !ok {
			return nil, table.Errorf(table.ErrParse, "%s: column %q missing from schema", filename, field.Name())
		}
		leaf[col.ColumnIndex] = i
	}

	t := table.NewTable(columns)
	for _, rg := range pf.RowGroups() {
		if err := readRowGroup(t, rg, leaf); err != nil {
			return nil, table.Wrapf(table.ErrParse, err, "error reading Parquet rows from %s", filename)
		}
	}

	return t, nil
}

func readRowGroup(t *table.Table, rg parquet.RowGroup, leaf map[int]int) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 64)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			vals := make([]table.Value, len(t.Columns))
			for _, v := range row {
				if i, ok := leaf[v.Column()]; ok {
					vals[i] = parquetValue(v)
				}
			}
			t.AddRow(vals)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func parquetValue(v parquet.Value) table.Value {
	if v.IsNull() {
		return table.Null()
	}
	switch v.Kind() {
	case parquet.Boolean:
		return table.BoolVal(v.Boolean())
	case parquet.Int32:
		return table.IntVal(int64(v.Int32()))
	case parquet.Int64:
		return table.IntVal(v.Int64())
	case parquet.Float:
		return table.FloatVal(float64(v.Float()))
	case parquet.Double:
		return table.FloatVal(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return table.StrVal(string(v.ByteArray()))
	default:
		return table.StrVal(v.String())
	}
}
