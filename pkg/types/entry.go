package types

import (
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/paths"
)

// Entry is a single path within a tree snapshot
type Entry struct {
	// Path is root-relative, slash separated, without trailing separator
	Path string `json:"path" yaml:"path"`

	// IsDir marks directory entries
	IsDir bool `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`

	// Origin is the input-tree path the content comes from.
	// Empty means the entry has not moved yet (Origin == Path).
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// Source returns the input-tree path backing this entry
func (e Entry) Source() string {
	if e.Origin != "" {
		return e.Origin
	}
	return e.Path
}

// Snapshot is an ordered, duplicate-free view of a tree at one point in time.
// Ancestor directories may or may not be listed.
type Snapshot struct {
	entries []Entry
	index   map[string]int
}

// NewSnapshot builds a snapshot from raw paths; a trailing "/" marks a directory.
func NewSnapshot(raw ...string) (*Snapshot, error) {
	entries := make([]Entry, 0, len(raw))
	for _, r := range raw {
		p, dir := paths.Normalize(r)
		entries = append(entries, Entry{Path: p, IsDir: dir})
	}
	return NewSnapshotFromEntries(entries)
}

// NewSnapshotFromEntries validates entries and builds a snapshot preserving their order.
func NewSnapshotFromEntries(entries []Entry) (*Snapshot, error) {
	s := &Snapshot{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}

	for _, e := range entries {
		p, dir := paths.Normalize(e.Path)
		if p == "" {
			return nil, errors.Newf(errors.ErrInvalidInput, "snapshot entry %q is empty", e.Path).
				WithDetail("path", e.Path)
		}
		if paths.Escapes(p) {
			return nil, errors.Newf(errors.ErrInvalidInput, "snapshot entry %q is outside the root", e.Path).
				WithDetail("path", e.Path)
		}
		if _, dup := s.index[p]; dup {
			return nil, errors.Newf(errors.ErrInvalidInput, "duplicate snapshot entry %q", p).
				WithDetail("path", p)
		}

		e.Path = p
		e.IsDir = e.IsDir || dir
		s.index[p] = len(s.entries)
		s.entries = append(s.entries, e)
	}

	return s, nil
}

// Entries returns a copy of the entries in snapshot order
func (s *Snapshot) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Paths returns the entry paths in snapshot order
func (s *Snapshot) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Path
	}
	return out
}

// Len returns the number of entries
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Lookup returns the entry listed at p
func (s *Snapshot) Lookup(p string) (Entry, bool) {
	i, ok := s.index[p]
	if !ok {
		return Entry{}, false
	}
	return s.entries[i], true
}
