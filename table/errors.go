package table

import (
	"github.com/pkg/errors"
)

// Error kinds. Match them with errors.Is.
var (
	ErrIO     = errors.New("io error")
	ErrParse  = errors.New("parse error")
	ErrConfig = errors.New("config error")
	ErrSchema = errors.New("schema error")
)

// Error is an error of a known kind.
type Error struct {
	Kind error
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Errorf creates an error of the given kind.
func Errorf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Errorf(format, args...)}
}

// Wrapf annotates err and tags it with the given kind.
func Wrapf(kind error, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Wrapf(err, format, args...)}
}

// MissingColumn returns a schema error for a column the table lacks.
func MissingColumn(op, col string) error {
	return Errorf(ErrSchema, "%s: column %q not found", op, col)
}
