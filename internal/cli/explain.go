package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/queryer"
	"github.com/roach88/sruq/internal/store"
	"github.com/roach88/sruq/internal/transport"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	SRUVersion string
	Overrides  config.Overrides

	NoDefaultValidation bool
	Save                string // snapshot name
	Database            string
	Output              string // snapshot file
	Filter              string

	// HTTPClient replaces the default HTTP client (for testing).
	HTTPClient transport.Doer
}

// ExplainResult is the JSON payload of the explain command.
type ExplainResult struct {
	ServerURL  string                                 `json:"server_url"`
	SRUVersion string                                 `json:"sru_version"`
	SnapshotID string                                 `json:"snapshot_id,omitempty"`
	Indexes    map[string]map[string]config.IndexInfo `json:"indexes"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <server-url>",
		Short: "Fetch a server's capabilities",
		Long: `Fetch and parse a server's explain response, apply overrides, and list
the available indexes. The resulting configuration can be stored as a named
snapshot (--save) or written to a YAML/JSON file (--output).

Examples:
  sruq explain https://example.com/view/sru/01ALMA --save alma
  sruq explain https://gapines.example.org/opac/extras/sru --sru-version 1.1 --filter title
  sruq explain https://example.com/sru --default-context-set dc --default-index title --output dc.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.SRUVersion, "sru-version", "", "SRU version to request (1.1 or 1.2; default 1.2)")
	flags.StringVar(&opts.Overrides.Username, "username", "", "basic auth username")
	flags.StringVar(&opts.Overrides.Password, "password", "", "basic auth password")
	flags.StringVar(&opts.Overrides.DefaultContextSet, "default-context-set", "", "override the default context set")
	flags.StringVar(&opts.Overrides.DefaultIndex, "default-index", "", "override the default index")
	flags.StringVar(&opts.Overrides.DefaultRelation, "default-relation", "", "override the default relation")
	flags.StringVar(&opts.Overrides.DefaultRecordSchema, "default-record-schema", "", "override the default record schema")
	flags.StringVar(&opts.Overrides.DefaultSortSchema, "default-sort-schema", "", "override the default sort schema")
	flags.IntVar(&opts.Overrides.DefaultRecordsReturned, "default-records-returned", 0, "override the default number of records returned")
	flags.IntVar(&opts.Overrides.MaxRecordsSupported, "max-records", 0, "override the maximum records supported")
	flags.StringSliceVar(&opts.Overrides.RecordPackingValues, "record-packing", nil, "override the available record packing values")
	flags.BoolVar(&opts.NoDefaultValidation, "no-default-validation", false, "do not substitute defaults when validating CQL")
	flags.StringVar(&opts.Save, "save", "", "store the configuration as a named snapshot")
	flags.StringVar(&opts.Database, "db", DefaultDatabase, "path to the snapshot database")
	flags.StringVar(&opts.Output, "output", "", "write the configuration to a YAML or JSON file")
	flags.StringVar(&opts.Filter, "filter", "", "only list indexes whose title contains this text")

	return cmd
}

func runExplain(opts *ExplainOptions, serverURL string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	ctx := cmd.Context()

	overrides := opts.Overrides
	if opts.NoDefaultValidation {
		overrides.DisableValidationForCQLDefaults = config.Bool(true)
	}

	q, err := queryer.New(ctx, serverURL, queryer.Options{
		SRUVersion: opts.SRUVersion,
		Overrides:  overrides,
		HTTPClient: opts.HTTPClient,
		Logger:     opts.Logger(cmd.ErrOrStderr()),
	})
	if err != nil {
		return formatter.Fail("explain failed", err)
	}
	cfg := q.Configuration()

	var snapshotID string
	if opts.Save != "" {
		err := withStore(opts.Database, func(st *store.Store) error {
			id, err := st.Save(ctx, opts.Save, cfg)
			snapshotID = id
			return err
		})
		if err != nil {
			return formatter.Fail("save snapshot", err)
		}
		formatter.VerboseLog("saved snapshot %s as %s in %s", opts.Save, snapshotID, opts.Database)
	}

	if opts.Output != "" {
		// Credentials are never written to snapshot files.
		file := cfg.Clone()
		file.Username, file.Password = "", ""
		if err := file.SaveFile(opts.Output); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "write snapshot file", err)
		}
		formatter.VerboseLog("wrote configuration to %s", opts.Output)
	}

	if opts.Format == "json" {
		return formatter.Success(ExplainResult{
			ServerURL:  cfg.ServerURL,
			SRUVersion: cfg.Version(),
			SnapshotID: snapshotID,
			Indexes:    cfg.FilterIndexes(opts.Filter),
		})
	}

	w := cmd.OutOrStdout()
	if err := q.AvailableIndexes(w, opts.Filter); err != nil {
		return err
	}
	if snapshotID != "" {
		fmt.Fprintf(w, "Saved snapshot %q (%s)\n", opts.Save, snapshotID)
	}
	return nil
}
