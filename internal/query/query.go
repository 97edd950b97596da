package query

import (
	"fmt"
	"strings"
)

// Request is a fully built statement ready to run against the record store.
// Builders are pure: the same filter always yields the same request, so a
// recording fake is enough to verify what would be sent.
type Request struct {
	SQL  string
	Args []any
}

// Error wraps a backend failure with the operation that issued it. The
// backend's message is preserved verbatim.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Wrap returns nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// DefaultLimit is assumed when an offset is given without a limit, keeping
// the historical row-range behavior.
const DefaultLimit = 10

type builder struct {
	sql      strings.Builder
	args     []any
	hasWhere bool
}

func (b *builder) write(s string) {
	b.sql.WriteString(s)
}

// arg registers v as the next positional argument and returns its
// placeholder.
func (b *builder) arg(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *builder) where(cond string) {
	if b.hasWhere {
		b.write(" AND ")
	} else {
		b.write(" WHERE ")
		b.hasWhere = true
	}
	b.write(cond)
}

// paginate caps the result at the inclusive row range
// [offset, offset+limit-1]. Offset without limit assumes DefaultLimit.
func (b *builder) paginate(limit, offset *int) {
	switch {
	case offset != nil:
		l := DefaultLimit
		if limit != nil {
			l = *limit
		}
		b.write(" LIMIT " + b.arg(l) + " OFFSET " + b.arg(*offset))
	case limit != nil:
		b.write(" LIMIT " + b.arg(*limit))
	}
}

func (b *builder) request() Request {
	return Request{SQL: b.sql.String(), Args: b.args}
}
