package transform

import (
	"context"

	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/logging"
	"github.com/arthur-debert/treemv/pkg/merge"
	"github.com/arthur-debert/treemv/pkg/pattern"
	"github.com/arthur-debert/treemv/pkg/rewrite"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/rs/zerolog"
)

// Move is one relocation request: entries selected by From go to To.
// An empty From selects the whole tree.
type Move struct {
	From string
	To   string
}

// Stats counts cache lookups since the driver was created or reset
type Stats struct {
	Hits   int
	Misses int
}

type cacheKey struct {
	fingerprint uint64
	source      string
	dest        string
}

// Driver runs build passes and caches their layouts
type Driver struct {
	logger   zerolog.Logger
	realizer Realizer
	cache    map[cacheKey]*types.Layout
	stats    Stats
}

// New creates a driver with an empty cache
func New(opts ...Option) *Driver {
	d := &Driver{
		logger: logging.GetLogger("transform"),
		cache:  make(map[cacheKey]*types.Layout),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run performs one build pass of snapshot moving sourceSpec to destSpec.
//
// Errors from the matcher, rewriter, merger or realizer abort the pass and
// are returned unchanged; nothing is cached then. A cached layout is
// returned without realizing it again.
func (d *Driver) Run(ctx context.Context, snapshot *types.Snapshot, sourceSpec, destSpec string) (*types.Layout, error) {
	layout, hit, err := d.pass(ctx, snapshot, Move{From: sourceSpec, To: destSpec})
	if err != nil {
		return nil, err
	}
	if hit {
		return layout, nil
	}

	if err := d.realize(ctx, layout); err != nil {
		return nil, err
	}
	d.store(snapshot, Move{From: sourceSpec, To: destSpec}, layout)
	return layout.Clone(), nil
}

// RunAll applies moves in order, each pass reading the layout of the one
// before it. Origins are kept across passes so the final layout still
// points into the first snapshot. Only the final layout is realized.
func (d *Driver) RunAll(ctx context.Context, snapshot *types.Snapshot, moves []Move) (*types.Layout, error) {
	if len(moves) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no moves given")
	}

	type computed struct {
		snapshot *types.Snapshot
		move     Move
		layout   *types.Layout
	}
	var pending []computed

	current := snapshot
	var layout *types.Layout
	for i, mv := range moves {
		out, hit, err := d.pass(ctx, current, mv)
		if err != nil {
			d.logger.Debug().
				Err(err).
				Int("move", i+1).
				Str("source", mv.From).
				Str("dest", mv.To).
				Msg("Chained move failed")
			return nil, err
		}
		if !hit {
			pending = append(pending, computed{snapshot: current, move: mv, layout: out})
		}
		layout = out

		if i < len(moves)-1 {
			next, err := out.Snapshot()
			if err != nil {
				return nil, errors.Wrap(err, errors.ErrInternal, "layout is not a valid snapshot")
			}
			current = next
		}
	}

	if len(pending) == 0 {
		d.logger.Debug().Int("moves", len(moves)).Msg("All passes served from cache")
		return layout, nil
	}

	if err := d.realize(ctx, layout); err != nil {
		return nil, err
	}
	for _, c := range pending {
		d.store(c.snapshot, c.move, c.layout)
	}
	return layout.Clone(), nil
}

// Stats returns the cache counters
func (d *Driver) Stats() Stats {
	return d.stats
}

// Reset empties the cache and zeroes the counters
func (d *Driver) Reset() {
	d.cache = make(map[cacheKey]*types.Layout)
	d.stats = Stats{}
}

// pass computes one layout, consulting the cache first. A cache hit is
// returned as a copy.
func (d *Driver) pass(ctx context.Context, snapshot *types.Snapshot, mv Move) (*types.Layout, bool, error) {
	if snapshot == nil {
		return nil, false, errors.New(errors.ErrInvalidInput, "snapshot is nil")
	}
	if err := checkCanceled(ctx); err != nil {
		return nil, false, err
	}

	key := cacheKey{fingerprint: Fingerprint(snapshot), source: mv.From, dest: mv.To}
	if cached, ok := d.cache[key]; ok {
		d.stats.Hits++
		d.logger.Debug().
			Str("source", mv.From).
			Str("dest", mv.To).
			Uint64("fingerprint", key.fingerprint).
			Msg("Layout served from cache")
		return cached.Clone(), true, nil
	}
	d.stats.Misses++

	layout, err := d.build(ctx, snapshot, mv)
	if err != nil {
		return nil, false, err
	}
	return layout, false, nil
}

// build runs matcher, rewriter and merger for one move
func (d *Driver) build(ctx context.Context, snapshot *types.Snapshot, mv Move) (*types.Layout, error) {
	src, err := pattern.Parse(mv.From)
	if err != nil {
		return nil, err
	}
	dst, err := pattern.ParseDest(mv.To)
	if err != nil {
		return nil, err
	}

	result := pattern.Match(snapshot, src)
	if len(result.Matched) == 0 {
		return nil, errors.NotFoundError(mv.From).WithDetail("entries", snapshot.Len())
	}

	policy, err := rewrite.SelectPolicy(src, dst, result.Matched[0].OwnerIsDir)
	if err != nil {
		return nil, err
	}
	rw := rewrite.New(policy, src, dst)

	d.logger.Debug().
		Str("source", mv.From).
		Str("dest", mv.To).
		Str("policy", policy.String()).
		Int("matched", len(result.Matched)).
		Int("unmatched", len(result.Unmatched)).
		Msg("Relocation policy selected")

	mapping := make([]types.Relocation, 0, len(result.Matched))
	for _, m := range result.Matched {
		if err := checkCanceled(ctx); err != nil {
			return nil, err
		}
		if collapsesOntoRoot(rw, m) {
			d.logger.Trace().Str("from", m.Path).Msg("Directory merged into the output root")
			continue
		}
		dest, err := rw.Rewrite(m)
		if err != nil {
			return nil, err
		}
		d.logger.Trace().Str("from", m.Path).Str("to", dest).Msg("Rewrote path")
		mapping = append(mapping, types.Relocation{
			Source: m.Path,
			Dest:   dest,
			Origin: m.Entry.Source(),
			IsDir:  m.Entry.IsDir,
		})
	}

	if err := checkCanceled(ctx); err != nil {
		return nil, err
	}
	return merge.Merge(result.Unmatched, mapping)
}

func (d *Driver) realize(ctx context.Context, layout *types.Layout) error {
	if err := checkCanceled(ctx); err != nil {
		return err
	}
	if d.realizer == nil {
		return nil
	}
	if err := d.realizer.Realize(ctx, layout.Clone()); err != nil {
		return err
	}
	// A pass canceled while realizing is not committed.
	return checkCanceled(ctx)
}

func (d *Driver) store(snapshot *types.Snapshot, mv Move, layout *types.Layout) {
	key := cacheKey{fingerprint: Fingerprint(snapshot), source: mv.From, dest: mv.To}
	d.cache[key] = layout.Clone()
	d.logger.Debug().
		Str("source", mv.From).
		Str("dest", mv.To).
		Int("entries", len(layout.Entries)).
		Msg("Layout cached")
}

// collapsesOntoRoot reports a listed prefix directory whose contents are
// being moved to the root; the directory itself has no destination.
func collapsesOntoRoot(rw *rewrite.Rewriter, m pattern.Hit) bool {
	return rw.Policy == rewrite.PrefixSubstitute &&
		rw.Dest.Path == "" &&
		m.Path == m.Owner &&
		m.Entry.IsDir
}

func checkCanceled(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrCanceled, "build pass canceled")
	}
	return nil
}
