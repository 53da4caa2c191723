// Command gen writes the sample sales data set in every format tally reads.
//
//	go run ./testdata/gen
package main

import (
	"log"
	"os"

	goavro "github.com/linkedin/goavro/v2"
	parquet "github.com/parquet-go/parquet-go"

	"github.com/razeghi71/tally/loader"
	"github.com/razeghi71/tally/table"
)

type Sale struct {
	Region   string  `parquet:"region"`
	Category string  `parquet:"category"`
	Units    int32   `parquet:"units"`
	Value    float64 `parquet:"value"`
	Promo    bool    `parquet:"promo"`
}

const saleSchema = `{
  "type": "record",
  "name": "sale",
  "fields": [
    {"name": "region", "type": "string"},
    {"name": "category", "type": "string"},
    {"name": "units", "type": "int"},
    {"name": "value", "type": "double"},
    {"name": "promo", "type": "boolean"}
  ]
}`

var sales = []Sale{
	{"north", "A", 1, 10, false},
	{"north", "A", 2, 20, true},
	{"south", "B", 1, 5, false},
	{"south", "B", 3, 15, false},
	{"east", "B", 4, 30, true},
	{"east", "C", 2, 12.5, false},
}

func main() {
	if err := writeCSV("testdata/sales.csv"); err != nil {
		log.Fatal(err)
	}
	if err := writeParquet("testdata/sales.parquet"); err != nil {
		log.Fatal(err)
	}
	if err := writeAvro("testdata/sales.avro"); err != nil {
		log.Fatal(err)
	}
}

func writeCSV(path string) error {
	t := table.NewTable([]string{"region", "category", "units", "value", "promo"})
	for _, s := range sales {
		t.AddRow([]table.Value{
			table.StrVal(s.Region),
			table.StrVal(s.Category),
			table.IntVal(int64(s.Units)),
			table.FloatVal(s.Value),
			table.BoolVal(s.Promo),
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return loader.WriteCSV(f, t, ',')
}

func writeParquet(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := parquet.NewWriter(f)
	for _, s := range sales {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Close()
}

func writeAvro(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := goavro.NewOCFWriter(goavro.OCFConfig{W: f, Schema: saleSchema})
	if err != nil {
		return err
	}
	records := make([]interface{}, 0, len(sales))
	for _, s := range sales {
		records = append(records, map[string]interface{}{
			"region":   s.Region,
			"category": s.Category,
			"units":    s.Units,
			"value":    s.Value,
			"promo":    s.Promo,
		})
	}
	return w.Append(records)
}
