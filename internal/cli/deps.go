package cli

import (
	"io"
	"strings"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/infra/clipper"
	"github.com/mccahan/geojson-clipping/internal/infra/geojsonio"
	"github.com/mccahan/geojson-clipping/internal/infra/stdinput"
	"github.com/mccahan/geojson-clipping/internal/ports"
	"github.com/mccahan/geojson-clipping/internal/usecase"
)

// Deps are the collaborators of one invocation. Zero fields get working defaults.
type Deps struct {
	Stdin  ports.InputStream
	Stdout io.Writer
	Stderr io.Writer

	Engine ports.GeometryEngine

	// NewWriter builds the result sink once the config is known.
	NewWriter func(stdout io.Writer, cfg domain.Config) ports.ResultWriter

	// LoadConfig returns the effective configuration.
	LoadConfig func() (domain.Config, error)

	// VerboseErrors selects the full diagnostic report over the one-line message.
	VerboseErrors bool
}

func (d Deps) withDefaults() Deps {
	if d.Stdin == nil {
		d.Stdin = stdinput.NewFromReader(nil, true)
	}
	if d.Stdout == nil {
		d.Stdout = io.Discard
	}
	if d.Stderr == nil {
		d.Stderr = io.Discard
	}
	if d.Engine == nil {
		d.Engine = usecase.NewComputeGeometry(
			geojsonio.NewReader(d.Stdin),
			clipper.New(),
		)
	}
	if d.NewWriter == nil {
		d.NewWriter = newResultWriter
	}
	if d.LoadConfig == nil {
		d.LoadConfig = func() (domain.Config, error) { return domain.DefaultConfig(), nil }
	}
	return d
}

func newResultWriter(stdout io.Writer, cfg domain.Config) ports.ResultWriter {
	return geojsonio.NewWriter(stdout,
		geojsonio.WithPrecision(cfg.Output.Precision),
		geojsonio.WithIndent(cfg.Output.Indent),
	)
}

// blank reports whether s is empty after trimming.
func blank(s string) bool { return strings.TrimSpace(s) == "" }
