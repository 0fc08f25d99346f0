// Package config discovers and loads the optional .geojson-clipping.yaml file.
package config

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

// Load reads the config file at path. Unknown keys are rejected.
func Load(path string) (domain.Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	var y yamlConfig
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&y); err != nil && !errors.Is(err, io.EOF) {
		return domain.DefaultConfig(), &domain.OpError{
			Op:   "config.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return mapConfig(path, y)
}

// Discover locates and loads the config for startDir. When no file exists it returns
// the defaults and an empty path.
func Discover(locator ports.ConfigLocator, startDir string) (domain.Config, string, error) {
	path, err := locator.FindConfig(startDir)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return domain.DefaultConfig(), "", nil
		}
		return domain.DefaultConfig(), "", err
	}

	cfg, err := Load(path)
	return cfg, path, err
}
