package cli

import (
	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/config"
)

// IndexesOptions holds flags for the indexes command.
type IndexesOptions struct {
	*RootOptions
	Database string
	Filter   string
}

// NewIndexesCommand creates the indexes command.
func NewIndexesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &IndexesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "indexes <snapshot>",
		Short: "List the indexes of a snapshot",
		Long: `List the indexes of a stored snapshot or snapshot file, grouped by
context set. --filter keeps indexes whose title contains the given text,
ignoring case.

Examples:
  sruq indexes alma
  sruq indexes ./gapines.yaml --filter title`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndexes(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to the snapshot database")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only list indexes whose title contains this text")

	return cmd
}

func runIndexes(opts *IndexesOptions, ref string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := loadConfiguration(cmd.Context(), ref, opts.Database)
	if err != nil {
		return formatter.Fail("load snapshot", err)
	}

	sets := cfg.FilterIndexes(opts.Filter)
	if opts.Format == "json" {
		return formatter.Success(sets)
	}
	return config.WriteIndexes(cmd.OutOrStdout(), sets)
}
