package manifest

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/spf13/afero"
)

// Loader reads manifests from package cache directories
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a new manifest loader backed by fs.
// A nil fs means the OS filesystem.
func NewLoader(fs afero.Fs) *Loader {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Loader{fs: fs}
}

// Load reads the urls.txt manifest of the given package directory
func (l *Loader) Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, domain.ManifestFileName)

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrManifestUnreadable, path, err)
	}

	return Parse(dir, data), nil
}

// Parse builds a manifest from raw urls.txt content
func Parse(dir string, data []byte) *Manifest {
	return &Manifest{
		Dir:   dir,
		lines: strings.Split(string(data), "\n"),
	}
}
