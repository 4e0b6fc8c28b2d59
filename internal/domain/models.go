package domain

import (
	"path/filepath"
	"sort"
)

// Reserved names inside a package cache directory that are never distributed
const (
	ManifestFileName = "urls.txt"
	LegacyURLsName   = "urls"
)

// Location is the channel and platform subdirectory a package belongs to
type Location struct {
	Channel string `json:"channel"`
	Subdir  string `json:"subdir"`
}

// String returns the location as "channel/subdir"
func (l Location) String() string {
	return l.Channel + "/" + l.Subdir
}

// Dir returns the destination directory for the location under prefix
func (l Location) Dir(prefix string) string {
	return filepath.Join(prefix, l.Channel, l.Subdir)
}

// ChannelRoot returns the channel directory for the location under prefix
func (l Location) ChannelRoot(prefix string) string {
	return filepath.Join(prefix, l.Channel)
}

// Entry is a candidate package file found in a source directory
type Entry struct {
	Name string
	Path string
}

// IsReservedName reports whether name is one of the manifest files that
// must never be treated as a package.
func IsReservedName(name string) bool {
	return name == ManifestFileName || name == LegacyURLsName
}

// Placement records a single package copied into the channel tree
type Placement struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	SourceDir   string   `json:"source_dir"`
	Location    Location `json:"location"`
	Prefix      string   `json:"prefix"`
	Destination string   `json:"destination"`
	Size        int64    `json:"size"`
	DryRun      bool     `json:"dry_run,omitempty"`
}

// ChannelRoot returns the prefix/channel directory that received the file
func (p *Placement) ChannelRoot() string {
	return p.Location.ChannelRoot(p.Prefix)
}

// ChannelSet is the set of distinct channel root directories touched during
// one distribution run.
type ChannelSet struct {
	roots map[string]struct{}
}

// NewChannelSet creates an empty channel set
func NewChannelSet() *ChannelSet {
	return &ChannelSet{roots: make(map[string]struct{})}
}

// Add records a channel root. Adding the same root twice is a no-op.
func (s *ChannelSet) Add(root string) {
	s.roots[filepath.Clean(root)] = struct{}{}
}

// Has reports whether root has been recorded
func (s *ChannelSet) Has(root string) bool {
	_, ok := s.roots[filepath.Clean(root)]
	return ok
}

// Len returns the number of distinct roots
func (s *ChannelSet) Len() int {
	return len(s.roots)
}

// Sorted returns the roots in lexical order
func (s *ChannelSet) Sorted() []string {
	out := make([]string, 0, len(s.roots))
	for root := range s.roots {
		out = append(out, root)
	}
	sort.Strings(out)
	return out
}
