package loader

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/razeghi71/tally/table"
)

// LoadCSV reads a delimited text file. Quoting is not interpreted: every
// occurrence of the delimiter splits a cell.
func LoadCSV(filename string, delimiter rune) (*table.Table, error) {
	return loadCSV(filename, delimiter)
}

func loadCSV(filename string, delimiter rune) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot open %s", filename)
	}
	defer f.Close()

	t, err := ParseCSV(f, delimiter)
	if err != nil {
		return nil, table.Wrapf(kindOf(err), err, "%s", filename)
	}
	return t, nil
}

// ParseCSV reads delimited text from r. The first non-empty line is the
// header. Short lines are padded with nulls, surplus cells are dropped and
// blank lines after the header become all-null rows.
func ParseCSV(r io.Reader, delimiter rune) (*table.Table, error) {
	if delimiter == 0 || delimiter == '\n' || delimiter == '\r' {
		return nil, table.Errorf(table.ErrConfig, "invalid delimiter %q", delimiter)
	}
	sep := string(delimiter)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var (
		t      *table.Table
		slots  []int // header position -> column index
		ncols  int
		lineNo int
	)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if t == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			var columns []string
			columns, slots = parseHeader(strings.Split(line, sep))
			ncols = len(columns)
			t = table.NewTable(columns)
			continue
		}

		cells := strings.Split(line, sep)
		vals := make([]table.Value, ncols)
		for i, slot := range slots {
			cell := ""
			if i < len(cells) {
				cell = strings.TrimSpace(cells[i])
			}
			vals[slot] = table.Infer(cell)
		}
		t.AddRow(vals)
	}
	if err := scanner.Err(); err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "error reading line %d", lineNo+1)
	}
	if t == nil {
		return nil, table.Errorf(table.ErrParse, "empty")
	}
	return t, nil
}

// parseHeader trims the header fields. A repeated name keeps the position of
// its first occurrence; later occurrences write into the same slot, so the
// last one wins.
func parseHeader(fields []string) ([]string, []int) {
	var columns []string
	slots := make([]int, len(fields))
	seen := make(map[string]int)
	for i, h := range fields {
		name := strings.TrimSpace(h)
		idx, ok := seen[name]
		if !ok {
			idx = len(columns)
			seen[name] = idx
			columns = append(columns, name)
		}
		slots[i] = idx
	}
	return columns, slots
}

func kindOf(err error) error {
	var e *table.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return table.ErrIO
}
