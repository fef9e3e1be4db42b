package config

import (
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/transform"
)

// Move is one configured relocation
type Move struct {
	From string `koanf:"from" toml:"from" yaml:"from" comment:"entries to move; empty moves the whole tree"`
	To   string `koanf:"to" toml:"to" yaml:"to" comment:"destination path, directory (trailing /) or glob"`
}

// Config holds the settings of one treemv invocation
type Config struct {
	Input   string `koanf:"input" toml:"input" yaml:"input" comment:"directory the input tree is read from"`
	Output  string `koanf:"output" toml:"output" yaml:"output" comment:"directory the relocated tree is written to; its contents are replaced"`
	Include string `koanf:"include" toml:"include" yaml:"include" comment:"optional specification selecting the input entries"`
	DryRun  bool   `koanf:"dry_run" toml:"dry_run" yaml:"dry_run" comment:"log planned operations without writing"`
	Moves   []Move `koanf:"moves" toml:"moves" yaml:"moves" comment:"relocations applied in order"`
}

// TransformMoves converts the configured moves for the transform driver
func (c *Config) TransformMoves() []transform.Move {
	out := make([]transform.Move, len(c.Moves))
	for i, m := range c.Moves {
		out[i] = transform.Move{From: m.From, To: m.To}
	}
	return out
}

// Validate checks the settings a build needs
func (c *Config) Validate() error {
	if c.Input == "" {
		return errors.New(errors.ErrConfigValid, "input directory is not set")
	}
	if c.Output == "" {
		return errors.New(errors.ErrConfigValid, "output directory is not set")
	}
	for i, m := range c.Moves {
		if m.To == "" {
			return errors.Newf(errors.ErrConfigValid, "move %d has no destination", i+1).
				WithDetail("move", i+1).
				WithDetail("from", m.From)
		}
	}
	return nil
}
