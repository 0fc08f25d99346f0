package ports

import "io"

// InputStream is standard input as seen by the command handler.
type InputStream interface {
	io.Reader
	// Piped reports whether data is available without user interaction.
	Piped() bool
}
