package state

import (
	"context"
	"encoding/json"
	"path/filepath"
	"sync"
	"time"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
	"github.com/quantmind-br/chuukaibutsu/internal/utils"
	"github.com/spf13/afero"
)

// StateFileName is the ledger file written at the root of the prefix
const StateFileName = ".chuukaibutsu-state.json"

// Collision is a destination file written by more than one source
// directory during a single run. The later placement wins on disk.
type Collision struct {
	Destination string
	Previous    *domain.Placement
	Current     *domain.Placement
}

// Manager tracks placements made during a run and, unless disabled,
// persists them to a ledger file under the prefix.
type Manager struct {
	fs         afero.Fs
	prefix     string
	state      *LedgerState
	mu         sync.RWMutex
	dirty      bool
	logger     *utils.Logger
	disabled   bool
	run        map[string]*domain.Placement
	collisions []Collision
}

// ManagerOptions contains options for creating a Manager
type ManagerOptions struct {
	Fs       afero.Fs
	Prefix   string
	Logger   *utils.Logger
	Disabled bool
}

// NewManager creates a ledger manager. A disabled manager still detects
// collisions within the run but never touches the ledger file.
func NewManager(opts ManagerOptions) *Manager {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.Logger == nil {
		opts.Logger = utils.NewNopLogger()
	}

	return &Manager{
		fs:       opts.Fs,
		prefix:   opts.Prefix,
		logger:   opts.Logger.WithComponent("state"),
		disabled: opts.Disabled,
		state:    NewLedgerState(opts.Prefix),
		run:      make(map[string]*domain.Placement),
	}
}

// Load reads the ledger file from the prefix
func (m *Manager) Load(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.statePath()
	data, err := afero.ReadFile(m.fs, path)
	if err != nil {
		if exists, _ := afero.Exists(m.fs, path); !exists {
			return ErrStateNotFound
		}
		return err
	}

	var state LedgerState
	if err := json.Unmarshal(data, &state); err != nil {
		return ErrStateCorrupted
	}

	if state.Version != StateVersion {
		m.logger.Warn().
			Int("file_version", state.Version).
			Int("expected_version", StateVersion).
			Msg("State version mismatch, will rebuild state")
		return ErrVersionMismatch
	}
	if state.Packages == nil {
		state.Packages = make(map[string]Record)
	}

	m.state = &state
	return nil
}

// Record registers a placement. If another source directory already wrote
// the same destination during this run, the collision is returned.
func (m *Manager) Record(p *domain.Placement) *Collision {
	m.mu.Lock()
	defer m.mu.Unlock()

	var collision *Collision
	if prev, ok := m.run[p.Destination]; ok && prev.SourceDir != p.SourceDir {
		collision = &Collision{Destination: p.Destination, Previous: prev, Current: p}
		m.collisions = append(m.collisions, *collision)
	}
	m.run[p.Destination] = p

	if !m.disabled && !p.DryRun {
		m.state.Packages[m.key(p.Destination)] = NewRecord(p)
		m.dirty = true
	}

	return collision
}

// Collisions returns the collisions seen during this run
func (m *Manager) Collisions() []Collision {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]Collision(nil), m.collisions...)
}

// Lookup returns the ledger record for a destination file
func (m *Manager) Lookup(destination string) (Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.state.Packages[m.key(destination)]
	return rec, ok
}

// Save writes the ledger file if anything changed
func (m *Manager) Save(ctx context.Context) error {
	if m.disabled {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.dirty {
		return nil
	}

	m.state.LastRun = time.Now()

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return err
	}

	path := m.statePath()
	if err := utils.EnsureDir(m.fs, filepath.Dir(path)); err != nil {
		return err
	}

	if err := afero.WriteFile(m.fs, path, data, 0644); err != nil {
		return err
	}

	m.dirty = false
	m.logger.Debug().
		Int("packages", m.state.PackageCount()).
		Int("channels", len(m.state.Channels())).
		Str("path", path).
		Msg("State saved")
	return nil
}

// Stats returns the number of packages placed in this run and the number
// recorded in the ledger overall.
func (m *Manager) Stats() (placed, total int) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.run), m.state.PackageCount()
}

func (m *Manager) key(destination string) string {
	rel, err := filepath.Rel(m.prefix, destination)
	if err != nil {
		return filepath.ToSlash(destination)
	}
	return filepath.ToSlash(rel)
}

func (m *Manager) statePath() string {
	return filepath.Join(m.prefix, StateFileName)
}
