package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidGeometry = errors.New("input geometry is not a valid Polygon or MultiPolygon")
	ErrNoPolygons      = errors.New("no Polygon or MultiPolygon geometry found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrNotFound        = errors.New("not found")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindUsage          ErrorKind = "usage"
	KindPrecondition   ErrorKind = "precondition"
	KindOperation      ErrorKind = "operation"
	KindIO             ErrorKind = "io"
	KindInvalidGeoJSON ErrorKind = "invalid_geojson"
	KindInvalidConfig  ErrorKind = "invalid_config"
	KindNotFound       ErrorKind = "not_found"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// IsUserError reports whether err is a usage or precondition problem, which is always
// reported with a help display regardless of error verbosity.
func IsUserError(err error) bool {
	k := KindOf(err)
	return k == KindUsage || k == KindPrecondition
}

// Message returns the end-user message for err: the cause of the outermost OpError,
// prefixed with its path when one is set, without operation or kind context.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var oe *OpError
	if !errors.As(err, &oe) || oe.Err == nil {
		return err.Error()
	}

	msg := Message(oe.Err)
	if oe.Path != "" {
		return oe.Path + ": " + msg
	}
	return msg
}

// messageError is a plain user-facing message.
type messageError struct{ msg string }

func newMessageError(msg string) error { return &messageError{msg: msg} }

func (e *messageError) Error() string { return e.msg }
