package loader

import (
	"encoding/json"
	"fmt"
	"os"

	goavro "github.com/linkedin/goavro/v2"
	"github.com/pkg/errors"
	"github.com/razeghi71/tally/table"
)

func loadAvro(filename string) (*table.Table, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "cannot open %s", filename)
	}
	defer f.Close()

	ocfr, err := goavro.NewOCFReader(f)
	if err != nil {
		return nil, table.Wrapf(table.ErrParse, err, "cannot read Avro OCF from %s", filename)
	}

	columns, err := avroColumns(ocfr.Codec().Schema())
	if err != nil {
		return nil, table.Wrapf(table.ErrParse, err, "cannot parse Avro schema of %s", filename)
	}

	t := table.NewTable(columns)
	for ocfr.Scan() {
		datum, err := ocfr.Read()
		if err != nil {
			return nil, table.Wrapf(table.ErrParse, err, "error reading Avro record %d", t.Len()+1)
		}

		rec, ok := datum.(map[string]interface{})
		if !ok {
			return nil, table.Errorf(table.ErrParse, "unexpected Avro record type %T", datum)
		}

		vals := make([]table.Value, len(columns))
		for i, col := range columns {
			vals[i] = avroValue(rec[col])
		}
		t.AddRow(vals)
	}

	if err := ocfr.Err(); err != nil {
		return nil, table.Wrapf(table.ErrIO, err, "error reading Avro file %s", filename)
	}

	return t, nil
}

// avroColumns returns the field names of a record schema in declaration order.
func avroColumns(schema string) ([]string, error) {
	var def struct {
		Type   interface{} `json:"type"`
		Fields []struct {
			Name string `json:"name"`
		} `json:"fields"`
	}
	if err := json.Unmarshal([]byte(schema), &def); err != nil {
		return nil, err
	}
	if def.Type != "record" {
		return nil, errors.Errorf("top-level schema type is %v, expected record", def.Type)
	}

	columns := make([]string, len(def.Fields))
	for i, field := range def.Fields {
		columns[i] = field.Name
	}
	return columns, nil
}

func avroValue(v interface{}) table.Value {
	switch val := v.(type) {
	case nil:
		return table.Null()
	case int32:
		return table.IntVal(int64(val))
	case int64:
		return table.IntVal(val)
	case float32:
		return table.FloatVal(float64(val))
	case float64:
		return table.FloatVal(val)
	case string:
		return table.StrVal(val)
	case bool:
		return table.BoolVal(val)
	case []byte:
		return table.StrVal(string(val))
	case map[string]interface{}:
		// unions decode as {"branch": value}
		if len(val) == 1 {
			for _, inner := range val {
				return avroValue(inner)
			}
		}
		b, _ := json.Marshal(val)
		return table.StrVal(string(b))
	default:
		return table.StrVal(fmt.Sprintf("%v", val))
	}
}
