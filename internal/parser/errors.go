package parser

import (
	"errors"
	"fmt"
)

// ErrorKind tags why a source document could not be turned into a tree.
type ErrorKind string

const (
	KindNotFound   ErrorKind = "not_found"
	KindUnreadable ErrorKind = "unreadable"
	KindEmpty      ErrorKind = "empty"
)

var (
	ErrSourceNotFound   = errors.New("source not found")
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrSourceEmpty      = errors.New("source empty")
)

// SourceError is the tagged failure returned by Load. No partial tree is
// ever returned alongside it.
type SourceError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Path, e.sentinel(), e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.sentinel())
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *SourceError) Is(target error) bool {
	return target == e.sentinel()
}

func (e *SourceError) sentinel() error {
	switch e.Kind {
	case KindNotFound:
		return ErrSourceNotFound
	case KindEmpty:
		return ErrSourceEmpty
	default:
		return ErrSourceUnreadable
	}
}

// KindOf reports the tag of a source error, or "" if err is not one.
func KindOf(err error) ErrorKind {
	var se *SourceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ""
}

// ParseError describes malformed markup.
type ParseError struct {
	// Line is the 1-based line where the problem was detected (0 if unknown).
	Line int

	// Message describes what went wrong.
	Message string

	// Err is the underlying decoder error, if any.
	Err error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, msg)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(line int, message string, err error) error {
	return &ParseError{Line: line, Message: message, Err: err}
}
