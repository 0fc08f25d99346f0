// Package stdinput decides whether standard input carries data for this invocation.
package stdinput

import (
	"bufio"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mccahan/geojson-clipping/internal/ports"
)

// Stream is standard input with a one-byte lookahead.
type Stream struct {
	r           *bufio.Reader
	interactive bool
}

var _ ports.InputStream = (*Stream)(nil)

// New wraps f. A terminal is never treated as piped input.
func New(f *os.File) *Stream {
	if f == nil {
		return NewFromReader(nil, true)
	}
	fd := f.Fd()
	return NewFromReader(f, isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// NewFromReader wraps r; interactive marks it as a terminal.
func NewFromReader(r io.Reader, interactive bool) *Stream {
	s := &Stream{interactive: interactive}
	if r != nil {
		s.r = bufio.NewReader(r)
	}
	return s
}

// Piped reports whether input is attached and holds at least one byte.
// An empty pipe or /dev/null counts as no input.
func (s *Stream) Piped() bool {
	if s.r == nil || s.interactive {
		return false
	}
	_, err := s.r.Peek(1)
	return err == nil
}

func (s *Stream) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, io.EOF
	}
	return s.r.Read(p)
}
