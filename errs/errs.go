// Package errs defines the error kinds machparse returns across its public
// API, built on top of github.com/juju/errors so callers can use
// errors.Cause/errors.As-style inspection and get annotated traces in logs.
package errs

import (
	stderrors "errors"
	"fmt"

	"github.com/juju/errors"

	"github.com/machparse/machparse/token"
)

// LexError reports a failure tokenizing source SQL.
type LexError struct {
	Pos token.Pos
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// NewLexError wraps a lex failure with position info, traced via juju/errors.
func NewLexError(pos token.Pos, msg string) error {
	return errors.Trace(&LexError{Pos: pos, Msg: msg})
}

// ParseError reports a failure parsing a token stream into an AST.
type ParseError struct {
	Pos token.Pos
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// NewParseError wraps a parse failure with position info.
func NewParseError(pos token.Pos, msg string) error {
	return errors.Trace(&ParseError{Pos: pos, Msg: msg})
}

// InjectError reports a failed parameter injection for Name: either a
// placeholder in the query has no supplied value, or a supplied name has no
// matching column in the query's scope.
type InjectError struct {
	Name string
}

func (e *InjectError) Error() string {
	return fmt.Sprintf("parameter injection: cannot resolve %q", e.Name)
}

// NewInjectError builds an InjectError for the named parameter.
func NewInjectError(name string) error {
	return errors.Trace(&InjectError{Name: name})
}

// MissingFixtureError reports a fixture rewrite that referenced a table
// absent from the fixture map.
type MissingFixtureError struct {
	Table string
}

func (e *MissingFixtureError) Error() string {
	return fmt.Sprintf("fixture rewrite: no replacement registered for table %q", e.Table)
}

// NewMissingFixtureError builds a MissingFixtureError for the named table.
func NewMissingFixtureError(table string) error {
	return errors.Trace(&MissingFixtureError{Table: table})
}

// FormatError reports a failure rendering an AST back to SQL text.
type FormatError struct {
	Msg string
}

func (e *FormatError) Error() string {
	return "format error: " + e.Msg
}

// NewFormatError wraps a formatting failure.
func NewFormatError(msg string) error {
	return errors.Trace(&FormatError{Msg: msg})
}

// Cancelled wraps a context cancellation observed mid-parse, preserving the
// underlying context error as the cause.
type Cancelled struct {
	Cause error
}

func (e *Cancelled) Error() string {
	return fmt.Sprintf("parse cancelled: %s", e.Cause)
}

func (e *Cancelled) Unwrap() error { return e.Cause }

// NewCancelled wraps ctx.Err() (or any cause) as a Cancelled error.
func NewCancelled(cause error) error {
	return errors.Trace(&Cancelled{Cause: cause})
}

// IsInjectError reports whether err is (or wraps) an InjectError.
func IsInjectError(err error) bool {
	var target *InjectError
	return stderrors.As(errors.Cause(err), &target)
}

// IsMissingFixtureError reports whether err is (or wraps) a MissingFixtureError.
func IsMissingFixtureError(err error) bool {
	var target *MissingFixtureError
	return stderrors.As(errors.Cause(err), &target)
}
