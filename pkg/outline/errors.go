package outline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies fatal extraction failures.
type ErrorKind string

const (
	// KindMetadata indicates a missing or inconsistent interchange element.
	KindMetadata ErrorKind = "metadata"
	// KindStructural indicates region boundaries that do not line up with
	// statement boundaries in the source.
	KindStructural ErrorKind = "structural"
	// KindExitShape indicates an exit line that is not exactly one
	// return or goto statement.
	KindExitShape ErrorKind = "exit_shape"
)

// Error is a fatal extraction error. Line is the 1-based source line the
// error refers to, or zero.
type Error struct {
	Kind ErrorKind
	Line int
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(" error")
	if e.Line > 0 {
		fmt.Fprintf(&sb, " at line %d", e.Line)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Msg)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

func metadataError(err error) *Error {
	return &Error{Kind: KindMetadata, Msg: "invalid interchange document", Err: err}
}

func structuralError(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindStructural, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func exitShapeError(line int, format string, args ...interface{}) *Error {
	return &Error{Kind: KindExitShape, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// MetadataError wraps a failure to read or validate an interchange
// document as a metadata error.
func MetadataError(err error) error {
	return metadataError(err)
}
