// Package merge composes relocated and untouched entries into one output layout.
package merge

import (
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/arthur-debert/treemv/pkg/types"
)

// Merge unions the unmatched entries with the relocation mapping.
//
// Every output path must come from exactly one source, and a file can not
// sit where another entry needs a directory; either case is a collision.
// Ancestor directories of relocated entries that do not exist yet are
// synthesized. The layout is sorted by path. On error nothing is returned.
func Merge(unmatched []types.Entry, mapping []types.Relocation) (*types.Layout, error) {
	moved := make(map[string]bool, len(mapping))
	for _, r := range mapping {
		moved[r.Source] = true
	}

	entries := make(map[string]types.LayoutEntry, len(unmatched)+len(mapping))
	// source of every output path, for diagnostics
	sources := make(map[string]string, len(unmatched)+len(mapping))

	for _, e := range unmatched {
		if moved[e.Path] {
			return nil, errors.Newf(errors.ErrInternal, "entry %q is both relocated and kept in place", e.Path).
				WithDetail("path", e.Path)
		}
		if prev, ok := sources[e.Path]; ok {
			return nil, errors.CollisionError(e.Path, prev, e.Path)
		}
		sources[e.Path] = e.Path
		entries[e.Path] = types.LayoutEntry{Path: e.Path, Origin: e.Source(), IsDir: e.IsDir}
	}

	for _, r := range mapping {
		if prev, ok := sources[r.Dest]; ok {
			return nil, errors.CollisionError(r.Dest, prev, r.Source)
		}
		sources[r.Dest] = r.Source
		origin := r.Origin
		if origin == "" {
			origin = r.Source
		}
		entries[r.Dest] = types.LayoutEntry{Path: r.Dest, Origin: origin, IsDir: r.IsDir, Moved: true}
	}

	for _, r := range mapping {
		for _, dir := range paths.Ancestors(r.Dest) {
			if _, ok := entries[dir]; ok {
				continue
			}
			sources[dir] = r.Source
			entries[dir] = types.LayoutEntry{Path: dir, IsDir: true, Moved: true}
		}
	}

	layout := &types.Layout{Entries: make([]types.LayoutEntry, 0, len(entries))}
	for _, e := range entries {
		layout.Entries = append(layout.Entries, e)
	}
	layout.Sort()

	// A file must not be the parent of anything.
	parentOf := make(map[string]string, len(entries))
	for _, e := range layout.Entries {
		for _, dir := range paths.Ancestors(e.Path) {
			if _, ok := parentOf[dir]; !ok {
				parentOf[dir] = e.Path
			}
		}
	}
	for _, e := range layout.Entries {
		if e.IsDir {
			continue
		}
		if child, ok := parentOf[e.Path]; ok {
			return nil, errors.CollisionError(e.Path, sources[e.Path], sources[child]).
				WithDetail("path", child)
		}
	}

	return layout, nil
}
