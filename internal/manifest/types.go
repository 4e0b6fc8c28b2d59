package manifest

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/quantmind-br/chuukaibutsu/internal/domain"
)

// Ensure Manifest implements domain.Resolver
var _ domain.Resolver = (*Manifest)(nil)

// Manifest is the parsed content of one package directory's urls.txt
type Manifest struct {
	Dir   string
	lines []string
}

// Len returns the number of lines in the manifest, blank lines included
func (m *Manifest) Len() int {
	return len(m.lines)
}

// Resolve returns the channel and subdirectory recorded for the package
// file name. The first matching line wins.
func (m *Manifest) Resolve(name string) (domain.Location, error) {
	if err := ValidateName(name); err != nil {
		return domain.Location{}, err
	}

	for _, line := range m.lines {
		if loc, ok := MatchLine(line, name); ok {
			return loc, nil
		}
	}

	return domain.Location{}, &EntryNotFoundError{Name: name, Dir: m.Dir}
}

// Locations returns every (channel, subdir) pair that a line of the
// manifest records for name, in file order.
func (m *Manifest) Locations(name string) []domain.Location {
	var locs []domain.Location
	for _, line := range m.lines {
		if loc, ok := MatchLine(line, name); ok {
			locs = append(locs, loc)
		}
	}
	return locs
}

// MatchLine reports whether line records name as its final path segment,
// preceded by a channel and a subdirectory segment.
//
// The text before the channel must contain at least one separator, so
// "free/linux-64/pkg" does not match while "/free/linux-64/pkg" does.
func MatchLine(line, name string) (domain.Location, bool) {
	line = strings.TrimSpace(line)

	suffix := "/" + name
	if !strings.HasSuffix(line, suffix) {
		return domain.Location{}, false
	}

	segments := strings.Split(strings.TrimSuffix(line, suffix), "/")
	if len(segments) < 3 {
		return domain.Location{}, false
	}

	channel := segments[len(segments)-2]
	subdir := segments[len(segments)-1]
	if !isWordSegment(channel) || !isWordSegment(subdir) {
		return domain.Location{}, false
	}

	return domain.Location{Channel: channel, Subdir: subdir}, true
}

// ValidateName checks that name is a plain file name with no separators
func ValidateName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case strings.ContainsAny(name, "\r\n"):
		return fmt.Errorf("%w: %q contains a line break", ErrInvalidName, name)
	}
	return nil
}

// isWordSegment reports whether s is non-empty and made of letters,
// numbers, underscores and hyphens. Numbers include non-decimal ones such
// as superscripts and roman numerals.
func isWordSegment(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		return false
	}
	return true
}
