package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/validate"
)

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Valid       bool   `json:"valid"`
	Path        string `json:"path"`
	ContextSets int    `json:"context_sets"`
	Indexes     int    `json:"indexes"`
	SRUVersion  string `json:"sru_version"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <config-file>",
		Short: "Check a configuration file",
		Long: `Check a YAML or JSON configuration file against the configuration schema,
then check that its defaults name available context sets, indexes, relations
and schemas.

Exit codes:
  0 - Configuration is valid
  1 - Configuration is invalid
  2 - Command error (missing file, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.LoadFile(path)
	if err != nil {
		return formatter.Fail("check failed", err)
	}
	if cfg.DefaultsEnabled() {
		if err := validate.Defaults(cfg); err != nil {
			return formatter.Fail("check failed", err)
		}
	}

	result := CheckResult{
		Valid:       true,
		Path:        path,
		ContextSets: len(cfg.ContextSets),
		SRUVersion:  cfg.Version(),
	}
	for _, indexes := range cfg.ContextSets {
		result.Indexes += len(indexes)
	}

	if opts.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is valid (SRU %s, %d context sets, %d indexes)\n",
		path, result.SRUVersion, result.ContextSets, result.Indexes)
	return nil
}
