package output

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
	"github.com/spf13/afero"
)

// Ensure Writer implements domain.Placer
var _ domain.Placer = (*Writer)(nil)

// Writer places package files into the prefix/channel/subdir tree
type Writer struct {
	fs       afero.Fs
	prefix   string
	dryRun   bool
	progress io.Writer
	logger   *utils.Logger
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	Fs     afero.Fs
	Prefix string
	DryRun bool
	// Progress receives one human-readable line per placed file.
	// Defaults to os.Stdout.
	Progress io.Writer
	Logger   *utils.Logger
}

// NewWriter creates a new placement writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Prefix == "" {
		opts.Prefix = "local"
	}
	if opts.Progress == nil {
		opts.Progress = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Writer{
		fs:       opts.Fs,
		prefix:   opts.Prefix,
		dryRun:   opts.DryRun,
		progress: opts.Progress,
		logger:   opts.Logger.WithComponent("placement"),
	}
}

// Place copies src into prefix/channel/subdir, creating the directory if
// needed and overwriting any file of the same name.
func (w *Writer) Place(ctx context.Context, src string, loc domain.Location) (*domain.Placement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	name := filepath.Base(src)
	dir := loc.Dir(w.prefix)
	placement := &domain.Placement{
		Name:        name,
		Source:      src,
		SourceDir:   filepath.Dir(src),
		Location:    loc,
		Prefix:      w.prefix,
		Destination: filepath.Join(dir, name),
		DryRun:      w.dryRun,
	}

	if w.dryRun {
		fmt.Fprintf(w.progress, "Would copy %s to %s\n", name, dir)
		if info, err := w.fs.Stat(src); err == nil {
			placement.Size = info.Size()
		}
		return placement, nil
	}

	if err := utils.EnsureDir(w.fs, dir); err != nil {
		return nil, domain.NewPlacementError("mkdir", name, dir, err)
	}

	fmt.Fprintf(w.progress, "Copying %s to %s\n", name, dir)

	n, err := utils.CopyFile(w.fs, src, placement.Destination)
	if err != nil {
		return nil, domain.NewPlacementError("copy", name, dir, err)
	}
	placement.Size = n

	w.logger.Debug().
		Str("file", name).
		Str("destination", placement.Destination).
		Int64("bytes", n).
		Msg("Package placed")

	return placement, nil
}

// Stats returns the number of files and total bytes under the prefix,
// skipping hidden files such as the placement ledger.
func (w *Writer) Stats() (int, int64, error) {
	var count int
	var size int64

	err := afero.Walk(w.fs, w.prefix, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || isHidden(info.Name()) {
			return nil
		}
		count++
		size += info.Size()
		return nil
	})

	return count, size, err
}

func isHidden(name string) bool {
	return len(name) > 0 && name[0] == '.'
}
