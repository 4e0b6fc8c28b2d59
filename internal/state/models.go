package state

import (
	"time"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
)

// StateVersion is the schema version for ledger file migration
const StateVersion = 1

// LedgerState is the persisted placement history of one prefix
type LedgerState struct {
	Version  int               `json:"version"`
	Prefix   string            `json:"prefix"`
	LastRun  time.Time         `json:"last_run"`
	Packages map[string]Record `json:"packages"`
}

// Record describes the last placement of one destination file. Packages
// are keyed by the destination path relative to the prefix.
type Record struct {
	Name      string    `json:"name"`
	SourceDir string    `json:"source_dir"`
	Channel   string    `json:"channel"`
	Subdir    string    `json:"subdir"`
	Size      int64     `json:"size"`
	PlacedAt  time.Time `json:"placed_at"`
}

// NewLedgerState creates a new empty ledger state
func NewLedgerState(prefix string) *LedgerState {
	return &LedgerState{
		Version:  StateVersion,
		Prefix:   prefix,
		LastRun:  time.Now(),
		Packages: make(map[string]Record),
	}
}

// NewRecord builds a record from a placement
func NewRecord(p *domain.Placement) Record {
	return Record{
		Name:      p.Name,
		SourceDir: p.SourceDir,
		Channel:   p.Location.Channel,
		Subdir:    p.Location.Subdir,
		Size:      p.Size,
		PlacedAt:  time.Now(),
	}
}

// PackageCount returns the number of packages in the ledger
func (s *LedgerState) PackageCount() int {
	return len(s.Packages)
}

// Channels returns the distinct channel names recorded in the ledger
func (s *LedgerState) Channels() map[string]int {
	out := make(map[string]int)
	for _, rec := range s.Packages {
		out[rec.Channel]++
	}
	return out
}
