package types

import "sort"

// Relocation associates one matched input path with its destination
type Relocation struct {
	Source string `json:"source" yaml:"source"`
	Dest   string `json:"dest" yaml:"dest"`
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
	IsDir  bool   `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`
}

// LayoutEntry is one path of the output tree
type LayoutEntry struct {
	// Path in the output tree
	Path string `json:"path" yaml:"path"`

	// Origin is the input-tree path whose content lands here.
	// Empty for synthesized directories.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`

	IsDir bool `json:"is_dir,omitempty" yaml:"is_dir,omitempty"`

	// Moved is set for relocated and synthesized entries
	Moved bool `json:"moved,omitempty" yaml:"moved,omitempty"`
}

// Layout is the ordered, deduplicated output of one build pass
type Layout struct {
	Entries []LayoutEntry `json:"entries" yaml:"entries"`
}

// Sort orders entries lexicographically by full path
func (l *Layout) Sort() {
	sort.Slice(l.Entries, func(i, j int) bool {
		return l.Entries[i].Path < l.Entries[j].Path
	})
}

// Paths returns every output path, directories included
func (l *Layout) Paths() []string {
	out := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		out[i] = e.Path
	}
	return out
}

// Files returns the output paths of non-directory entries
func (l *Layout) Files() []string {
	out := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		if !e.IsDir {
			out = append(out, e.Path)
		}
	}
	return out
}

// Clone returns a deep copy
func (l *Layout) Clone() *Layout {
	entries := make([]LayoutEntry, len(l.Entries))
	copy(entries, l.Entries)
	return &Layout{Entries: entries}
}

// Snapshot turns the layout into the input of a following pass, keeping origins
func (l *Layout) Snapshot() (*Snapshot, error) {
	entries := make([]Entry, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = Entry{Path: e.Path, IsDir: e.IsDir, Origin: e.Origin}
	}
	return NewSnapshotFromEntries(entries)
}
