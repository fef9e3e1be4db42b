// Package synthfs realizes computed layouts on disk through a synthfs pipeline.
package synthfs

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/arthur-debert/synthfs/pkg/synthfs"
	"github.com/arthur-debert/synthfs/pkg/synthfs/core"
	synthfilesystem "github.com/arthur-debert/synthfs/pkg/synthfs/filesystem"
	"github.com/arthur-debert/synthfs/pkg/synthfs/operations"
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/filesystem"
	"github.com/arthur-debert/treemv/pkg/logging"
	"github.com/arthur-debert/treemv/pkg/paths"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/rs/zerolog"
)

// Executor copies the input tree into the output root following a layout.
// It satisfies transform.Realizer.
type Executor struct {
	logger     zerolog.Logger
	dryRun     bool
	input      string
	output     string
	fs         filesystem.FS
	filesystem synthfs.FileSystem
}

// NewExecutor creates an executor reading from input and writing to output.
// Realizing cleans the output root, so it must not contain the input root.
// An output root inside the input root is allowed; callers leave it out of
// the input snapshot.
func NewExecutor(input, output string, dryRun bool) (*Executor, error) {
	absInput, err := filepath.Abs(input)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve input root %s", input)
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to resolve output root %s", output)
	}
	if isPathWithin(absInput, absOutput) {
		return nil, errors.Newf(errors.ErrInvalidInput, "output root %s contains input root %s", absOutput, absInput).
			WithDetail("input", absInput).
			WithDetail("output", absOutput)
	}

	return &Executor{
		logger:     logging.GetLogger("core.synthfs"),
		dryRun:     dryRun,
		input:      absInput,
		output:     absOutput,
		fs:         filesystem.NewOS(),
		filesystem: synthfilesystem.NewOSFileSystem("/"), // Use root filesystem
	}, nil
}

// Output returns the absolute output root
func (e *Executor) Output() string {
	return e.output
}

// Realize replaces the contents of the output root with the layout.
// Directories are created for every directory entry and every parent of
// a file; files are copied from their origin in the input root.
func (e *Executor) Realize(ctx context.Context, layout *types.Layout) error {
	dirs, files, err := e.plan(layout)
	if err != nil {
		return err
	}

	if e.dryRun {
		e.logger.Info().Msg("Dry run mode - layout would be realized:")
		for _, d := range dirs {
			e.logger.Info().Str("target", e.target(d.path)).Msg("Would create directory")
		}
		for _, f := range files {
			e.logger.Info().
				Str("source", e.source(f.Origin)).
				Str("target", e.target(f.Path)).
				Msg("Would copy file")
		}
		return nil
	}

	if err := e.clean(); err != nil {
		return err
	}

	pipeline := synthfs.NewMemPipeline()
	count := 0
	for _, d := range dirs {
		op, err := e.createDir(d)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrActionExecute, "failed to add operation to pipeline")
		}
		count++
	}
	for _, f := range files {
		op, err := e.copyFile(f)
		if err != nil {
			return err
		}
		if err := pipeline.Add(op); err != nil {
			return errors.Wrapf(err, errors.ErrActionExecute, "failed to add operation to pipeline")
		}
		count++
	}

	if count == 0 {
		e.logger.Info().Str("output", e.output).Msg("Layout is empty, output root left empty")
		return nil
	}

	e.logger.Info().Int("operationCount", count).Str("output", e.output).Msg("Executing operations")

	result := synthfs.NewExecutor().Run(ctx, pipeline, e.filesystem)
	if result.GetError() != nil {
		e.logger.Error().Err(result.GetError()).Msg("Pipeline execution failed")
		return errors.Wrapf(result.GetError(), errors.ErrActionExecute, "failed to realize layout in %s", e.output)
	}

	e.logger.Info().Msg("Layout realized successfully")
	return nil
}

type plannedDir struct {
	path string
	mode fs.FileMode
}

// plan checks every origin in the input root and lists the directories to
// create, parents first, and the files to copy.
func (e *Executor) plan(layout *types.Layout) ([]plannedDir, []types.LayoutEntry, error) {
	modes := make(map[string]fs.FileMode)
	var files []types.LayoutEntry

	for _, entry := range layout.Entries {
		for _, dir := range paths.Ancestors(entry.Path) {
			if _, ok := modes[dir]; !ok {
				modes[dir] = 0755
			}
		}

		if entry.IsDir {
			mode := fs.FileMode(0755)
			if entry.Origin != "" {
				info, err := e.fs.Stat(e.source(entry.Origin))
				if err == nil && info.IsDir() {
					mode = info.Mode().Perm()
				}
			}
			modes[entry.Path] = mode
			continue
		}

		if entry.Origin == "" {
			return nil, nil, errors.Newf(errors.ErrInternal, "file %s has no origin", entry.Path).
				WithDetail("path", entry.Path)
		}
		info, err := e.fs.Stat(e.source(entry.Origin))
		if err != nil {
			return nil, nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", entry.Origin).
				WithDetail("path", entry.Origin)
		}
		if info.IsDir() {
			return nil, nil, errors.Newf(errors.ErrFileAccess, "%s is a directory in the input tree", entry.Origin).
				WithDetail("path", entry.Origin)
		}
		files = append(files, entry)
	}

	dirs := make([]plannedDir, 0, len(modes))
	for p, mode := range modes {
		dirs = append(dirs, plannedDir{path: p, mode: mode})
	}
	// A parent sorts before its children.
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].path < dirs[j].path })

	return dirs, files, nil
}

// clean empties the output root, creating it when missing
func (e *Executor) clean() error {
	e.logger.Debug().Str("output", e.output).Msg("Cleaning output root")
	if err := e.fs.RemoveAll(e.output); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to clean output root %s", e.output).
			WithDetail("path", e.output)
	}
	if err := e.fs.MkdirAll(e.output, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create output root %s", e.output).
			WithDetail("path", e.output)
	}
	return nil
}

func (e *Executor) createDir(d plannedDir) (synthfs.Operation, error) {
	target := e.target(d.path)
	relPath, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert path: %s", target)
	}

	e.logger.Debug().
		Str("target", target).
		Str("mode", d.mode.String()).
		Msg("Creating directory operation")

	opID := core.OperationID(fmt.Sprintf("create-dir-%s", d.path))
	createOp := operations.NewCreateDirectoryOperation(opID, relPath)
	createOp.SetItem(&directoryItem{
		path: relPath,
		mode: d.mode,
	})

	return synthfs.NewOperationsPackageAdapter(createOp), nil
}

func (e *Executor) copyFile(entry types.LayoutEntry) (synthfs.Operation, error) {
	source := e.source(entry.Origin)
	target := e.target(entry.Path)

	relSource, err := filepath.Rel("/", source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert source path: %s", source)
	}
	relTarget, err := filepath.Rel("/", target)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "failed to convert target path: %s", target)
	}

	e.logger.Debug().
		Str("source", source).
		Str("target", target).
		Msg("Creating copy file operation")

	opID := core.OperationID(fmt.Sprintf("copy-%s-to-%s", entry.Origin, entry.Path))
	copyOp := operations.NewCopyOperation(opID, relTarget)
	copyOp.SetPaths(relSource, relTarget)

	return synthfs.NewOperationsPackageAdapter(copyOp), nil
}

func (e *Executor) source(p string) string {
	return filepath.Join(e.input, filepath.FromSlash(p))
}

func (e *Executor) target(p string) string {
	return filepath.Join(e.output, filepath.FromSlash(p))
}

// isPathWithin checks if a path is within a parent directory
func isPathWithin(path, parent string) bool {
	path = filepath.Clean(path)
	parent = filepath.Clean(parent)

	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator))
}

// directoryItem implements the interface needed for directory operations
type directoryItem struct {
	path string
	mode fs.FileMode
}

func (d *directoryItem) Path() string       { return d.path }
func (d *directoryItem) Type() string       { return "directory" }
func (d *directoryItem) Mode() fs.FileMode  { return d.mode }
func (d *directoryItem) IsDir() bool        { return true }
func (d *directoryItem) ModTime() time.Time { return time.Now() }
func (d *directoryItem) Size() int64        { return 0 }
