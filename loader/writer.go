package loader

import (
	"bufio"
	"io"
	"strings"

	"github.com/razeghi71/tally/table"
)

// WriteCSV serialises a table in the format ParseCSV reads: a header line,
// then one line per row, nulls as empty cells. Nothing is quoted, so cells
// containing the delimiter do not survive a round trip.
func WriteCSV(w io.Writer, t *table.Table, delimiter rune) error {
	bw := bufio.NewWriter(w)
	sep := string(delimiter)

	if _, err := bw.WriteString(strings.Join(t.Columns, sep) + "\n"); err != nil {
		return table.Wrapf(table.ErrIO, err, "write header")
	}
	cells := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j := range cells {
			cells[j] = ""
			if j < len(row.Values) {
				cells[j] = row.Values[j].String()
			}
		}
		if _, err := bw.WriteString(strings.Join(cells, sep) + "\n"); err != nil {
			return table.Wrapf(table.ErrIO, err, "write row %d", i)
		}
	}
	if err := bw.Flush(); err != nil {
		return table.Wrapf(table.ErrIO, err, "flush")
	}
	return nil
}
