package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

const (
	// FileName is the config file searched for from the working directory upward.
	FileName = ".geojson-clipping.yaml"
	// EnvVar overrides the search with an explicit path.
	EnvVar = "GEOJSON_CLIPPING_CONFIG"
)

// Finder locates the config file that applies to a directory.
type Finder struct {
	ConfigFile string // defaults to FileName
	Getenv     func(string) string
}

var _ ports.ConfigLocator = (*Finder)(nil)

func NewFinder() *Finder {
	return &Finder{ConfigFile: FileName, Getenv: os.Getenv}
}

// FindConfig returns the path named by EnvVar when set, otherwise the nearest
// FileName in startDir or one of its parents.
func (f *Finder) FindConfig(startDir string) (string, error) {
	if f.Getenv != nil {
		if p := strings.TrimSpace(f.Getenv(EnvVar)); p != "" {
			return filepath.Clean(p), nil
		}
	}

	if startDir == "" {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("startDir is empty"),
		}
	}

	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", &domain.OpError{
			Op:   "config.find",
			Kind: domain.KindIO,
			Err:  err,
		}
	}

	info, statErr := os.Stat(abs)
	if statErr == nil && !info.IsDir() {
		abs = filepath.Dir(abs)
	}

	name := f.ConfigFile
	if name == "" {
		name = FileName
	}

	cur := filepath.Clean(abs)
	for {
		p := filepath.Join(cur, name)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			return "", &domain.OpError{
				Op:   "config.find",
				Kind: domain.KindNotFound,
				Err:  domain.ErrNotFound,
			}
		}
		cur = parent
	}
}
