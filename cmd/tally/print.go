package main

import (
	"encoding/json"
	"io"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/razeghi71/tally/loader"
	"github.com/razeghi71/tally/table"
)

type printer func(w io.Writer, t *table.Table) error

func newPrinter(format string, delimiter rune) (printer, error) {
	switch strings.ToLower(format) {
	case "table", "":
		return printTable, nil
	case "csv":
		return func(w io.Writer, t *table.Table) error {
			return loader.WriteCSV(w, t, delimiter)
		}, nil
	case "json":
		return printJSON, nil
	}
	return nil, table.Errorf(table.ErrConfig, "unknown output format %q (expected table, csv or json)", format)
}

func printTable(w io.Writer, t *table.Table) error {
	if len(t.Columns) == 0 {
		return nil
	}

	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		widths[i] = utf8.RuneCountInString(col)
	}

	cells := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells[i] = make([]string, len(t.Columns))
		for j := range t.Columns {
			if j < len(row.Values) {
				cells[i][j] = row.Values[j].AsString()
			} else {
				cells[i][j] = "null"
			}
			if n := utf8.RuneCountInString(cells[i][j]); n > widths[j] {
				widths[j] = n
			}
		}
	}

	var sb strings.Builder
	headerParts := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headerParts[i] = padRight(col, widths[i])
	}
	sb.WriteString(strings.Join(headerParts, " | ") + "\n")

	sepParts := make([]string, len(t.Columns))
	for i := range t.Columns {
		sepParts[i] = strings.Repeat("-", widths[i])
	}
	sb.WriteString(strings.Join(sepParts, "-+-") + "\n")

	for _, row := range cells {
		parts := make([]string, len(t.Columns))
		for i := range t.Columns {
			parts[i] = padRight(row[i], widths[i])
		}
		sb.WriteString(strings.Join(parts, " | ") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func padRight(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

type jsonTable struct {
	Columns []string        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

func printJSON(w io.Writer, t *table.Table) error {
	out := jsonTable{Columns: t.Columns, Rows: make([][]interface{}, 0, len(t.Rows))}
	for _, row := range t.Rows {
		vals := make([]interface{}, len(t.Columns))
		for i := range t.Columns {
			if i < len(row.Values) {
				vals[i] = nativeValue(row.Values[i])
			}
		}
		out.Rows = append(out.Rows, vals)
	}
	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return e.Encode(out)
}

// nativeValue maps a value onto what encoding/json can represent. NaN and
// infinities have no JSON form and become null.
func nativeValue(v table.Value) interface{} {
	switch v.Type {
	case table.TypeInt:
		return v.Int
	case table.TypeFloat:
		if math.IsNaN(v.Float) || math.IsInf(v.Float, 0) {
			return nil
		}
		return v.Float
	case table.TypeBool:
		return v.Bool
	case table.TypeString:
		return v.Str
	}
	return nil
}
