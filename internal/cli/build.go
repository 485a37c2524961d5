package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/queryer"
	"github.com/roach88/sruq/internal/request"
)

// BuildOptions holds flags for the build command.
type BuildOptions struct {
	*RootOptions
	Database   string
	NoValidate bool
}

// BuildResult is the JSON payload of the build command.
type BuildResult struct {
	Method        string `json:"method"`
	URL           string `json:"url"`
	Authenticated bool   `json:"authenticated"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <snapshot> <request-file>",
		Short: "Build a searchRetrieve URL without sending it",
		Long: `Build a searchRetrieve request from a YAML or JSON request file and
print its URL. The request is validated against the snapshot unless
--no-validate is given.

Exit codes:
  0 - Request built
  1 - Request rejected by validation
  2 - Command error (missing files, unknown snapshot, etc.)

Examples:
  sruq build alma ./title-search.yaml
  sruq build ./gapines.yaml ./keyword.json --no-validate`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to the snapshot database")
	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false, "skip request validation")

	return cmd
}

func runBuild(opts *BuildOptions, ref, requestFile string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	q, sr, err := prepareSearch(opts.RootOptions, cmd, ref, opts.Database, requestFile, queryer.Options{})
	if err != nil {
		return formatter.Fail("build request", err)
	}
	req, err := q.Render(sr, !opts.NoValidate)
	if err != nil {
		return formatter.Fail("build request", err)
	}

	if opts.Format == "json" {
		return formatter.Success(BuildResult{
			Method:        req.Method,
			URL:           req.URL,
			Authenticated: req.Header.Get("Authorization") != "",
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), req.URL)
	return nil
}

// prepareSearch loads the snapshot and the request file and assembles the
// searchRetrieve operation.
func prepareSearch(root *RootOptions, cmd *cobra.Command, ref, dbPath, requestFile string, qopts queryer.Options) (*queryer.Queryer, *request.SearchRetrieve, error) {
	cfg, err := loadConfiguration(cmd.Context(), ref, dbPath)
	if err != nil {
		return nil, nil, err
	}
	m, err := loadRequestMap(requestFile)
	if err != nil {
		return nil, nil, err
	}

	qopts.Logger = root.Logger(cmd.ErrOrStderr())
	q, err := queryer.FromConfiguration(cfg, qopts)
	if err != nil {
		return nil, nil, err
	}
	sr, err := q.SearchFromMap(m)
	if err != nil {
		return nil, nil, err
	}
	return q, sr, nil
}
