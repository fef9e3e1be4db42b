package transform

import (
	"context"

	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/rs/zerolog"
)

// Realizer makes a computed layout physically present. The layout is not
// committed, and not cached, until Realize returns nil.
type Realizer interface {
	Realize(ctx context.Context, layout *types.Layout) error
}

// RealizerFunc adapts a function to the Realizer interface
type RealizerFunc func(ctx context.Context, layout *types.Layout) error

// Realize calls f
func (f RealizerFunc) Realize(ctx context.Context, layout *types.Layout) error {
	return f(ctx, layout)
}

// Option configures a Driver
type Option func(*Driver)

// WithRealizer sets the collaborator that realizes each uncached layout
func WithRealizer(r Realizer) Option {
	return func(d *Driver) {
		d.realizer = r
	}
}

// WithLogger replaces the driver's component logger
func WithLogger(logger zerolog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}
