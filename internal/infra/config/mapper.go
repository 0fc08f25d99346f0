package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

const maxPrecision = 15

// mapConfig applies parsed values on top of defaults.
func mapConfig(path string, y yamlConfig) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	g := y.GeoJSONClipping

	if g.Output.Precision != nil {
		p := *g.Output.Precision
		if p < 0 || p > maxPrecision {
			return cfg, invalidField(path, "output.precision", fmt.Sprintf("must be between 0 and %d, got %d", maxPrecision, p))
		}
		cfg.Output.Precision = p
	}
	if g.Output.Indent != nil {
		if strings.Trim(*g.Output.Indent, " \t") != "" {
			return cfg, invalidField(path, "output.indent", "only spaces and tabs are allowed")
		}
		cfg.Output.Indent = *g.Output.Indent
	}
	if g.Warnings.Quiet != nil {
		cfg.Warnings.Quiet = *g.Warnings.Quiet
	}
	if f := strings.TrimSpace(g.Log.File); f != "" {
		// Relative log paths are anchored at the config file.
		if !filepath.IsAbs(f) {
			f = filepath.Join(filepath.Dir(path), f)
		}
		cfg.Log.File = filepath.Clean(f)
	}
	if g.Log.Debug != nil {
		cfg.Log.Debug = *g.Log.Debug
	}

	return cfg, nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
