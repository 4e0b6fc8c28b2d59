package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/quantmind-br/chuukaibutsu/internal/config"
	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/indexer"
	"github.com/quantmind-br/chuukaibutsu/internal/manifest"
	"github.com/quantmind-br/chuukaibutsu/internal/output"
	"github.com/quantmind-br/chuukaibutsu/internal/state"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
	"github.com/spf13/afero"
)

// Distributor copies cached package files into the channel tree and
// optionally indexes every channel it touched
type Distributor struct {
	opts    domain.CommonOptions
	prefix  string
	fs      afero.Fs
	loader  *manifest.Loader
	placer  domain.Placer
	indexer domain.Indexer
	ledger  *state.Manager
	stderr  io.Writer
	logger  *utils.Logger
}

// DistributorOptions contains options for creating a distributor
type DistributorOptions struct {
	domain.CommonOptions
	Config *config.Config
	Fs     afero.Fs
	Stdout io.Writer
	Stderr io.Writer
	Logger *utils.Logger

	// Placer and Indexer replace the default filesystem writer and
	// external command
	Placer  domain.Placer
	Indexer domain.Indexer
}

// treeStats is implemented by placers that can measure the channel tree
type treeStats interface {
	Stats() (int, int64, error)
}

// locator is implemented by resolvers that can list every location
// recorded for a name, not only the one that wins
type locator interface {
	Locations(name string) []domain.Location
}

// Result summarises one distribution run
type Result struct {
	Dirs         []string
	Placements   []*domain.Placement
	ChannelRoots []string
	Indexed      []string
	Collisions   []state.Collision
	Duration     time.Duration
}

// NewDistributor creates a distributor with the given configuration.
// Flags in CommonOptions enable features on top of what the config enables.
func NewDistributor(opts DistributorOptions) (*Distributor, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	common := opts.CommonOptions
	common.DryRun = common.DryRun || cfg.Output.DryRun
	common.Progress = common.Progress || cfg.Output.Progress
	common.Index = common.Index || cfg.Index.Enabled
	common.Record = common.Record || cfg.State.Enabled

	logger := opts.Logger
	if logger == nil {
		logLevel := "info"
		logFormat := "pretty"
		if cfg.Logging.Level != "" {
			logLevel = cfg.Logging.Level
		}
		if cfg.Logging.Format != "" {
			logFormat = cfg.Logging.Format
		}
		logger = utils.NewLogger(utils.LoggerOptions{
			Level:   logLevel,
			Format:  logFormat,
			Verbose: common.Verbose,
		})
	}

	prefix := cfg.Output.Prefix
	if prefix == "" {
		prefix = config.DefaultPrefix()
	}
	prefix = filepath.Clean(utils.ExpandPath(prefix))

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	placer := opts.Placer
	if placer == nil {
		placer = output.NewWriter(output.WriterOptions{
			Fs:       fs,
			Prefix:   prefix,
			DryRun:   common.DryRun,
			Progress: stdout,
			Logger:   logger,
		})
	}

	idx := opts.Indexer
	if idx == nil {
		cmd := indexer.NewCommand(indexer.CommandOptions{
			Argv:   cfg.Index.Command,
			Stdout: stdout,
			Stderr: stderr,
			Logger: logger,
		})
		if common.DryRun {
			idx = indexer.Noop{Out: stdout, Command: cmd.Name()}
		} else {
			idx = cmd
		}
	}

	return &Distributor{
		opts:    common,
		prefix:  prefix,
		fs:      fs,
		loader:  manifest.NewLoader(fs),
		placer:  placer,
		indexer: idx,
		ledger: state.NewManager(state.ManagerOptions{
			Fs:       fs,
			Prefix:   prefix,
			Logger:   logger,
			Disabled: !common.Record,
		}),
		stderr: stderr,
		logger: logger,
	}, nil
}

// Distribute places every package file of each directory, in the order
// given, then indexes the touched channel roots when indexing is enabled.
// The first error aborts the run; files already copied stay in place, the
// ledger records them, and the partial result is returned alongside the
// error.
func (d *Distributor) Distribute(ctx context.Context, dirs []string) (*Result, error) {
	startTime := time.Now()
	result := &Result{}

	if len(dirs) == 0 {
		return result, domain.ErrNoSourceDirs
	}

	d.logger.Info().
		Int("dirs", len(dirs)).
		Str("prefix", d.prefix).
		Bool("dry_run", d.opts.DryRun).
		Bool("index", d.opts.Index).
		Msg("Starting distribution")

	d.loadLedger(ctx)
	defer d.saveLedger(ctx)

	channels := domain.NewChannelSet()
	for _, dir := range dirs {
		if err := ctx.Err(); err != nil {
			d.logger.Warn().Msg("Distribution cancelled")
			return d.finish(result, channels, startTime), err
		}
		if err := d.distributeDir(ctx, dir, channels, result); err != nil {
			if ctx.Err() != nil {
				d.logger.Warn().Msg("Distribution cancelled")
				return d.finish(result, channels, startTime), ctx.Err()
			}
			return d.finish(result, channels, startTime), err
		}
		result.Dirs = append(result.Dirs, dir)
	}

	result.ChannelRoots = channels.Sorted()

	if d.opts.Index {
		if err := d.indexChannels(ctx, result); err != nil {
			return d.finish(result, channels, startTime), err
		}
	}

	d.finish(result, channels, startTime)

	placed, total := d.ledger.Stats()
	event := d.logger.Info()
	if tree, ok := d.placer.(treeStats); ok && !d.opts.DryRun {
		if files, size, err := tree.Stats(); err == nil {
			event = event.Int("tree_files", files).Int64("tree_bytes", size)
		}
	}
	event.
		Int("packages", placed).
		Int("channels", len(result.ChannelRoots)).
		Int("collisions", len(result.Collisions)).
		Int("ledger_total", total).
		Dur("duration", result.Duration).
		Msg("Distribution completed")

	return result, nil
}

func (d *Distributor) distributeDir(ctx context.Context, dir string, channels *domain.ChannelSet, result *Result) error {
	log := d.logger.WithSource(dir)

	m, err := d.loader.Load(dir)
	if err != nil {
		return err
	}

	entries, err := d.listEntries(dir)
	if err != nil {
		return err
	}

	log.Debug().
		Int("entries", len(entries)).
		Int("manifest_lines", m.Len()).
		Msg("Processing package directory")

	var bar interface{ Add(int) error }
	if d.opts.Progress {
		pb := utils.NewProgressBar(d.stderr, len(entries), utils.DescDistributing)
		defer pb.Finish()
		bar = pb
	}

	var resolver domain.Resolver = m
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		loc, err := d.resolve(log, resolver, entry.Name)
		if err != nil {
			return err
		}

		p, err := d.placer.Place(ctx, entry.Path, loc)
		if err != nil {
			return err
		}

		prev, recorded := d.ledger.Lookup(p.Destination)
		if c := d.ledger.Record(p); c != nil {
			log.Warn().
				Str("destination", c.Destination).
				Str("previous_source", c.Previous.SourceDir).
				Msg("Package overwritten by another source directory")
		} else if recorded && prev.SourceDir != p.SourceDir {
			log.Debug().
				Str("destination", p.Destination).
				Str("previous_source", prev.SourceDir).
				Msg("Replacing package recorded by an earlier run")
		}

		root := p.ChannelRoot()
		if !channels.Has(root) {
			log.Debug().Str("channel", root).Msg("New channel root")
			channels.Add(root)
		}
		result.Placements = append(result.Placements, p)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	return nil
}

// resolve maps name to its location, warning when the manifest also
// records it elsewhere. The first matching line still wins.
func (d *Distributor) resolve(log *utils.Logger, r domain.Resolver, name string) (domain.Location, error) {
	loc, err := r.Resolve(name)
	if err != nil {
		return loc, err
	}

	if l, ok := r.(locator); ok {
		for _, other := range l.Locations(name) {
			if other != loc {
				log.Warn().
					Str("file", name).
					Str("location", loc.String()).
					Str("ignored", other.String()).
					Msg("Manifest records package under more than one location")
			}
		}
	}

	return loc, nil
}

// listEntries returns the package files of dir in name order, skipping
// subdirectories and the manifest files themselves. Symlinks are followed
// when deciding whether an entry is a directory.
func (d *Distributor) listEntries(dir string) ([]domain.Entry, error) {
	infos, err := afero.ReadDir(d.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	entries := make([]domain.Entry, 0, len(infos))
	for _, info := range infos {
		if domain.IsReservedName(info.Name()) {
			continue
		}

		path := filepath.Join(dir, info.Name())
		isDir := info.IsDir()
		if info.Mode()&os.ModeSymlink != 0 {
			// A dangling link is left for resolution and copy to report
			if target, err := d.fs.Stat(path); err == nil {
				isDir = target.IsDir()
			}
		}
		if isDir {
			continue
		}

		entries = append(entries, domain.Entry{Name: info.Name(), Path: path})
	}
	return entries, nil
}

func (d *Distributor) indexChannels(ctx context.Context, result *Result) error {
	d.logger.Info().
		Str("indexer", d.indexer.Name()).
		Int("channels", len(result.ChannelRoots)).
		Msg("Indexing channels")

	for _, root := range result.ChannelRoots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.indexer.Index(ctx, root); err != nil {
			return err
		}
		result.Indexed = append(result.Indexed, root)
	}
	return nil
}

func (d *Distributor) loadLedger(ctx context.Context) {
	err := d.ledger.Load(ctx)
	switch {
	case err == nil:
	case errors.Is(err, state.ErrStateNotFound):
		d.logger.Debug().Msg("No previous state found, starting fresh")
	default:
		d.logger.Warn().Err(err).Msg("Failed to load state, rebuilding")
	}
}

func (d *Distributor) saveLedger(ctx context.Context) {
	if err := d.ledger.Save(ctx); err != nil {
		d.logger.Warn().Err(err).Msg("Failed to save state")
	}
}

func (d *Distributor) finish(result *Result, channels *domain.ChannelSet, startTime time.Time) *Result {
	if result.ChannelRoots == nil && channels.Len() > 0 {
		result.ChannelRoots = channels.Sorted()
	}
	result.Collisions = d.ledger.Collisions()
	result.Duration = time.Since(startTime)
	return result
}
