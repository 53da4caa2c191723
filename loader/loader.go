package loader

import (
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/razeghi71/tally/table"
)

// Option configures how a file is loaded.
type Option func(*config)

type config struct {
	delimiter rune
	logger    *slog.Logger
}

// WithDelimiter sets the CSV cell delimiter. It must be a single character.
func WithDelimiter(d rune) Option {
	return func(c *config) {
		c.delimiter = d
	}
}

// WithLogger sets the logger used to report ingestion progress.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func applyOptions(ext string, opts []Option) *config {
	cfg := &config{delimiter: ','}
	if ext == ".tsv" {
		cfg.delimiter = '\t'
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	return cfg
}

// ParseDelimiter validates a delimiter given as text.
func ParseDelimiter(s string) (rune, error) {
	if s == `\t` {
		return '\t', nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, table.Errorf(table.ErrConfig, "delimiter must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// Load reads a file and returns a Table.
func Load(filename string, opts ...Option) (*table.Table, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	cfg := applyOptions(ext, opts)

	var (
		t   *table.Table
		err error
	)
	switch ext {
	case ".csv", ".tsv", ".txt":
		t, err = loadCSV(filename, cfg.delimiter)
	case ".json":
		t, err = loadJSON(filename)
	case ".jsonl":
		t, err = loadJSONL(filename)
	case ".avro":
		t, err = loadAvro(filename)
	case ".parquet":
		t, err = loadParquet(filename)
	default:
		return nil, table.Errorf(table.ErrConfig, "unsupported file format %q (supported: .csv, .tsv, .txt, .json, .jsonl, .avro, .parquet)", ext)
	}
	if err != nil {
		return nil, err
	}

	cfg.logger.Debug("table loaded", "file", filename, "rows", t.Len(), "columns", len(t.Columns))
	return t, nil
}
