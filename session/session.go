// Package session holds the state a front-end keeps while a user explores a
// table: the table as loaded, the table currently shown and the operations
// applied in between.
package session

import (
	"github.com/razeghi71/tally/ast"
	"github.com/razeghi71/tally/engine"
	"github.com/razeghi71/tally/loader"
	"github.com/razeghi71/tally/table"
)

// Session is not safe for concurrent use.
type Session struct {
	source   *ast.SourceOp
	original *table.Table
	current  *table.Table
	history  []ast.Op
	opts     []engine.Option
}

// New starts a session on t. Group-by results are kept typed so later
// filters and sorts see numbers rather than their text.
func New(t *table.Table, opts ...engine.Option) *Session {
	return &Session{
		original: t,
		current:  t,
		opts:     append([]engine.Option{engine.WithTypedResults()}, opts...),
	}
}

// Open loads the file src names, with its delimiter when set, and starts a
// session on it. The source is kept so Query can be replayed later.
func Open(src *ast.SourceOp, loadOpts []loader.Option, opts ...engine.Option) (*Session, error) {
	t, err := load(src, loadOpts)
	if err != nil {
		return nil, err
	}
	s := New(t, opts...)
	s.source = src
	return s, nil
}

func load(src *ast.SourceOp, loadOpts []loader.Option) (*table.Table, error) {
	if src == nil || src.Filename == "" {
		return nil, table.Errorf(table.ErrConfig, "no source file")
	}
	opts := append([]loader.Option(nil), loadOpts...)
	if src.Delimiter != 0 {
		opts = append(opts, loader.WithDelimiter(src.Delimiter))
	}
	return loader.Load(src.Filename, opts...)
}

// Source returns the file the session was opened from, nil when it was
// started on a table.
func (s *Session) Source() *ast.SourceOp {
	return s.source
}

// Original returns the table the session was started with.
func (s *Session) Original() *table.Table {
	return s.original
}

// Current returns the result of every applied operation.
func (s *Session) Current() *table.Table {
	return s.current
}

// Apply runs op against the current table. On failure the session is left
// unchanged.
func (s *Session) Apply(op ast.Op) (*table.Table, error) {
	next, err := engine.Execute(&ast.Query{Ops: []ast.Op{op}}, s.current, s.opts...)
	if err != nil {
		return nil, err
	}
	s.current = next
	s.history = append(s.history, op)
	return next, nil
}

// Restore drops every applied operation and returns the original table.
func (s *Session) Restore() *table.Table {
	s.current = s.original
	s.history = nil
	return s.original
}

// Modified reports whether any operation has been applied since the last
// restore.
func (s *Session) Modified() bool {
	return len(s.history) > 0
}

// History returns the applied operations, oldest first.
func (s *Session) History() []ast.Op {
	out := make([]ast.Op, len(s.history))
	copy(out, s.history)
	return out
}

// Query returns the source and the applied operations as a pipeline that
// reproduces the current table.
func (s *Session) Query() *ast.Query {
	return &ast.Query{Source: s.source, Ops: s.History()}
}

// Replay loads the source of q and runs its operations the way a session
// applies them.
func Replay(q *ast.Query, loadOpts []loader.Option, opts ...engine.Option) (*table.Table, error) {
	t, err := load(q.Source, loadOpts)
	if err != nil {
		return nil, err
	}
	return engine.Execute(q, t, append([]engine.Option{engine.WithTypedResults()}, opts...)...)
}
