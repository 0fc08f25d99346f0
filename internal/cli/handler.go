package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/infra/logger"
)

// Handler validates one parsed invocation, resolves its inputs and drives the engine.
type Handler struct {
	deps  Deps
	theme Theme
}

func newHandler(deps Deps) *Handler {
	return &Handler{deps: deps, theme: NewTheme(deps.Stderr)}
}

func (h *Handler) Handle(ctx context.Context, req domain.InvocationRequest) error {
	piped := h.deps.Stdin.Piped()
	if err := domain.CheckPreconditions(req, piped); err != nil {
		return err
	}

	cfg, err := h.deps.LoadConfig()
	if err != nil {
		return err
	}

	warn := domain.NopWarn
	if !req.Options.Quiet && !cfg.Warnings.Quiet {
		warn = h.warnf
	}

	cleanup, err := logger.Setup(logger.Config{Path: cfg.Log.File, Debug: cfg.Log.Debug})
	if err != nil {
		warn("logging disabled: %v", err)
	}
	if cleanup != nil {
		defer func() { _ = cleanup() }()
	}
	log := logger.L()

	inputs, err := domain.ResolveInputs(req, piped)
	if err != nil {
		return err
	}

	log.Info("invocation.start",
		"op", req.Operation.String(),
		"stdin", piped,
		"positionals", len(inputs.Positionals),
		"subject", inputs.Subject != nil,
	)

	start := time.Now()
	result, err := h.deps.Engine.Compute(ctx, req.Operation, inputs, warn)
	if err != nil {
		log.Error("invocation.failed", "op", req.Operation.String(), "kind", string(domain.KindOf(err)), "err", err.Error())
		return err
	}
	log.Debug("engine.compute",
		"op", req.Operation.String(),
		"polygons", len(result),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w := h.deps.NewWriter(h.deps.Stdout, cfg)
	if err := w.Write(ctx, req.Options.OutputPath, result); err != nil {
		log.Error("invocation.failed", "op", req.Operation.String(), "kind", string(domain.KindOf(err)), "err", err.Error())
		return err
	}
	log.Info("output.write", "target", target(req.Options.OutputPath), "polygons", len(result))
	return nil
}

func (h *Handler) warnf(format string, args ...any) {
	writeLine(h.deps.Stderr, h.theme.Warning.Render("warning: "+fmt.Sprintf(format, args...)))
}

func target(path string) string {
	if path == "" {
		return "stdout"
	}
	return path
}

func writeLine(w io.Writer, s string) {
	_, _ = io.WriteString(w, s+"\n")
}
