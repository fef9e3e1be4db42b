package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/treemv/pkg/config"
	"github.com/arthur-debert/treemv/pkg/errors"
	"github.com/arthur-debert/treemv/pkg/filesystem"
	"github.com/arthur-debert/treemv/pkg/find"
	"github.com/arthur-debert/treemv/pkg/logging"
	"github.com/arthur-debert/treemv/pkg/synthfs"
	"github.com/arthur-debert/treemv/pkg/transform"
	"github.com/arthur-debert/treemv/pkg/types"
	"github.com/spf13/cobra"
)

// loadConfig layers command-line flags and positional moves over the
// configuration file and environment.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	flags := make(map[string]interface{})
	for _, name := range []string{"input", "output", "include"} {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			flags[name] = f.Value.String()
		}
	}
	if f := cmd.Flags().Lookup("dry-run"); f != nil && f.Changed {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		flags["dry_run"] = dryRun
	}

	switch len(args) {
	case 1:
		flags["moves"] = []interface{}{map[string]interface{}{"from": "", "to": args[0]}}
	case 2:
		flags["moves"] = []interface{}{map[string]interface{}{"from": args[0], "to": args[1]}}
	}

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{ConfigFile: configFile, Flags: flags})
	if err != nil {
		return nil, err
	}
	if len(cfg.Moves) == 0 {
		return nil, errors.New(errors.ErrConfigValid, "no moves given: pass [from] to, or list moves in the config file")
	}
	return cfg, nil
}

// build reads the input tree and applies every configured move. When
// realize is set the final layout is written to the output directory.
func build(ctx context.Context, cfg *config.Config, realize bool) (*types.Layout, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.GetLogger("cli")
	done := logging.LogOperationStart(logger, "build")
	defer done()

	snapshot, err := find.Tree(filesystem.NewReadOnlyOS(), cfg.Input, cfg.Include, outputBelowInput(cfg)...)
	if err != nil {
		return nil, err
	}

	var opts []transform.Option
	if realize {
		executor, err := synthfs.NewExecutor(cfg.Input, cfg.Output, cfg.DryRun)
		if err != nil {
			return nil, err
		}
		opts = append(opts, transform.WithRealizer(executor))
	}

	logger.Info().
		Str("input", cfg.Input).
		Str("output", cfg.Output).
		Int("entries", snapshot.Len()).
		Int("moves", len(cfg.Moves)).
		Str("fingerprint", transform.FingerprintHex(snapshot)).
		Msg("Building output tree")

	return transform.New(opts...).RunAll(ctx, snapshot, cfg.TransformMoves())
}

// outputBelowInput returns the output directory relative to the input
// directory when it lies inside it, so earlier output is not read back.
func outputBelowInput(cfg *config.Config) []string {
	input, err := filepath.Abs(cfg.Input)
	if err != nil {
		return nil
	}
	output, err := filepath.Abs(cfg.Output)
	if err != nil {
		return nil
	}
	rel, err := filepath.Rel(input, output)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil
	}
	return []string{filepath.ToSlash(rel)}
}
