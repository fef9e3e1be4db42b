package cli

import (
	"fmt"

	"github.com/arthur-debert/treemv/internal/version"
	"github.com/arthur-debert/treemv/pkg/config"
	"github.com/arthur-debert/treemv/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:     "treemv",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: .treemv.toml or .treemv.yaml in the current directory)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "Input directory")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output directory")
	rootCmd.PersistentFlags().String("include", "", "Only read input entries selected by this specification")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newPlanCmd())
	rootCmd.AddCommand(newGenconfigCmd())

	if err := installTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Long:  MsgVersionLong,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "treemv version %s\n", version.Version)
			if version.Commit != "" {
				_, _ = fmt.Fprintf(out, "Commit: %s\n", version.Commit)
			}
			if version.Date != "" {
				_, _ = fmt.Fprintf(out, "Built:  %s\n", version.Date)
			}
		},
	}
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "run [from] [to]",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			layout, err := build(cmd.Context(), cfg, true)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if cfg.DryRun {
				_, _ = fmt.Fprintln(out, MsgDryRunNotice)
				return nil
			}
			moved := 0
			for _, e := range layout.Entries {
				if e.Moved {
					moved++
				}
			}
			_, _ = fmt.Fprintf(out, MsgRealizedFormat, len(layout.Entries), moved, cfg.Output)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "Preview changes without writing them")
	return cmd
}

func newPlanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "plan [from] [to]",
		Short:   MsgPlanShort,
		Long:    MsgPlanLong,
		Example: MsgPlanExample,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := rendererFor(format, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}

			layout, err := build(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}
			return renderer.Render(layout)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func newGenconfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenconfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := config.Generate()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), content)
			return err
		},
	}
}
