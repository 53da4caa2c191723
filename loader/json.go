package loader

import (
	"bufio"
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/razeghi71/tally/table"
)

// record is one decoded JSON object with its keys in document order.
type record struct {
	keys []string
	vals map[string]interface{}
}

func loadJSON(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot open %s", filename)
	}
	defer f.Close()

	dec := newDecoder(f)
	if err := expectDelim(dec, '['); err != nil {
		return nil, table.Wrapf(table.ErrParse, err, "cannot parse JSON from %s (expected array of objects)", filename)
	}
	var records []record
	for dec.More() {
		rec, err := decodeObject(dec)
		if err != nil {
			return nil, table.Wrapf(table.ErrParse, err, "cannot parse JSON from %s", filename)
		}
		records = append(records, rec)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, table.Wrapf(table.ErrParse, err, "cannot parse JSON from %s", filename)
	}

	return buildTableFromRecords(records), nil
}

func loadJSONL(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot open %s", filename)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var records []record
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		rec, err := decodeObject(newDecoder(bytes.NewReader(line)))
		if err != nil {
			return nil, table.Wrapf(table.ErrParse, err, "invalid JSON on line %d", lineNum)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "error reading %s", filename)
	}

	return buildTableFromRecords(records), nil
}

func newDecoder(r io.Reader) *json.Decoder {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return dec
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return errors.Errorf("expected %v at offset %d", want, dec.InputOffset())
	}
	return nil
}

func decodeObject(dec *json.Decoder) (record, error) {
	rec := record{vals: make(map[string]interface{})}
	if err := expectDelim(dec, '{'); err != nil {
		return rec, err
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return rec, err
		}
		key := tok.(string)
		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return rec, err
		}
		if _, dup := rec.vals[key]; !dup {
			rec.keys = append(rec.keys, key)
		}
		rec.vals[key] = v
	}
	return rec, expectDelim(dec, '}')
}

// buildTableFromRecords orders columns by first appearance across records.
func buildTableFromRecords(records []record) *table.Table {
	if len(records) == 0 {
		return table.NewTable(nil)
	}

	colSet := make(map[string]bool)
	var columns []string
	for _, rec := range records {
		for _, k := range rec.keys {
			if !colSet[k] {
				colSet[k] = true
				columns = append(columns, k)
			}
		}
	}

	t := table.NewTable(columns)
	for _, rec := range records {
		vals := make([]table.Value, len(columns))
		for i, col := range columns {
			vals[i] = jsonValue(rec.vals[col])
		}
		t.AddRow(vals)
	}

	return t
}

func jsonValue(v interface{}) table.Value {
	switch val := v.(type) {
	case nil:
		return table.Null()
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return table.IntVal(i)
		}
		if f, err := val.Float64(); err == nil {
			return table.FloatVal(f)
		}
		return table.StrVal(val.String())
	case string:
		return table.StrVal(val)
	case bool:
		return table.BoolVal(val)
	default:
		// nested objects and arrays are kept as their JSON text
		b, _ := json.Marshal(val)
		return table.StrVal(string(b))
	}
}
