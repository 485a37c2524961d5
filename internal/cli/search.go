package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/queryer"
	"github.com/roach88/sruq/internal/transport"
)

// SearchOptions holds flags for the search command.
type SearchOptions struct {
	*RootOptions
	Database   string
	NoValidate bool
	Output     string
	Username   string
	Password   string

	// HTTPClient replaces the default HTTP client (for testing).
	HTTPClient transport.Doer
}

// SearchResult is the JSON payload of the search command when the
// response is written to a file.
type SearchResult struct {
	URL    string `json:"url"`
	Output string `json:"output"`
	Bytes  int    `json:"bytes"`
}

// NewSearchCommand creates the search command.
func NewSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "search <snapshot> <request-file>",
		Short: "Send a searchRetrieve request",
		Long: `Build a searchRetrieve request from a YAML or JSON request file, validate
it against the snapshot, send it, and print the raw response body (or write
it to --output). Snapshots never hold credentials; pass --username and
--password for servers that need them.

Examples:
  sruq search alma ./title-search.yaml
  sruq search alma ./title-search.yaml --output results.xml --username u --password p`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", DefaultDatabase, "path to the snapshot database")
	cmd.Flags().BoolVar(&opts.NoValidate, "no-validate", false, "skip request validation")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write the response body to a file")
	cmd.Flags().StringVar(&opts.Username, "username", "", "basic auth username")
	cmd.Flags().StringVar(&opts.Password, "password", "", "basic auth password")

	return cmd
}

func runSearch(opts *SearchOptions, ref, requestFile string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	q, sr, err := prepareSearch(opts.RootOptions, cmd, ref, opts.Database, requestFile, queryer.Options{
		Overrides:  config.Overrides{Username: opts.Username, Password: opts.Password},
		HTTPClient: opts.HTTPClient,
	})
	if err != nil {
		return formatter.Fail("search failed", err)
	}
	body, err := q.Send(cmd.Context(), sr, !opts.NoValidate)
	if err != nil {
		return formatter.Fail("search failed", err)
	}

	if opts.Output == "" {
		_, err := cmd.OutOrStdout().Write(body)
		return err
	}

	if err := os.WriteFile(opts.Output, body, 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "write response", err)
	}
	formatter.VerboseLog("wrote %d bytes to %s", len(body), opts.Output)
	if opts.Format == "json" {
		url, _ := sr.URL()
		return formatter.Success(SearchResult{URL: url, Output: opts.Output, Bytes: len(body)})
	}
	return nil
}
