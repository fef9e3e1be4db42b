// Package find produces tree snapshots from a directory on disk.
package find

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/filesystem"
	"github.com/arthur-debert/treemv/pkg/logging"
	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/arthur-debert/treemv/pkg/pattern"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/rs/zerolog"
)

// Tree walks root and returns every entry below it, directories included,
// in lexical order. Paths are relative to root.
//
// A non-empty include keeps only the entries it selects; a directory
// selected by include brings its descendants along. An include that
// selects nothing is a NOT_FOUND error. Exclude lists root-relative paths
// left out together with everything below them.
func Tree(fsys filesystem.FS, root, include string, exclude ...string) (*types.Snapshot, error) {
	logger := logging.GetLogger("find")

	spec, err := pattern.Parse(include)
	if err != nil {
		return nil, err
	}

	info, err := fsys.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read input root %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "input root %s is not a directory", root).
			WithDetail("path", root)
	}

	skip := make(map[string]bool, len(exclude))
	for _, x := range exclude {
		if p, _ := paths.Normalize(x); p != "" {
			skip[p] = true
		}
	}

	var entries []types.Entry
	err = fsys.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if skip[rel] {
			logger.Trace().Str("path", rel).Msg("Excluded from input tree")
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		entries = append(entries, types.Entry{Path: rel, IsDir: info.IsDir()})
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to walk %s", root).
			WithDetail("path", root)
	}

	snap, err := types.NewSnapshotFromEntries(entries)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("root", root).
		Int("entries", snap.Len()).
		Msg("Walked input tree")

	if spec.Kind == pattern.KindAll {
		return snap, nil
	}
	return filter(logger, snap, spec)
}

// filter keeps the entries spec selects, in snapshot order
func filter(logger zerolog.Logger, snap *types.Snapshot, spec *pattern.Spec) (*types.Snapshot, error) {
	result := pattern.Match(snap, spec)
	if len(result.Matched) == 0 {
		return nil, errors.NotFoundError(spec.Raw).WithDetail("entries", snap.Len())
	}

	keep := make(map[string]bool, len(result.Matched))
	for _, m := range result.Matched {
		keep[m.Path] = true
	}

	entries := make([]types.Entry, 0, len(keep))
	for _, e := range snap.Entries() {
		if keep[e.Path] {
			entries = append(entries, e)
		}
	}

	logger.Debug().
		Str("include", spec.Raw).
		Int("kept", len(entries)).
		Int("dropped", snap.Len()-len(entries)).
		Msg("Filtered input tree")

	return types.NewSnapshotFromEntries(entries)
}
