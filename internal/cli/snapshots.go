package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/sruq/internal/config"
	"github.com/roach88/sruq/internal/store"
)

// SnapshotsOptions holds flags shared by the snapshots commands.
type SnapshotsOptions struct {
	*RootOptions
	Database string
}

// NewSnapshotsCommand creates the snapshots command and its subcommands.
func NewSnapshotsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SnapshotsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "List stored snapshots",
		Long: `List the configuration snapshots stored in the database, ordered by name.

Examples:
  sruq snapshots
  sruq snapshots import alma ./alma.yaml
  sruq snapshots export alma ./alma.json
  sruq snapshots delete alma`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsList(opts, cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Database, "db", DefaultDatabase, "path to the snapshot database")

	cmd.AddCommand(&cobra.Command{
		Use:           "import <name> <config-file>",
		Short:         "Store a configuration file as a named snapshot",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsImport(opts, args[0], args[1], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "export <name> <config-file>",
		Short:         "Write a snapshot to a YAML or JSON file",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsExport(opts, args[0], args[1], cmd)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:           "delete <name>",
		Short:         "Remove a snapshot",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnapshotsDelete(opts, args[0], cmd)
		},
	})

	return cmd
}

func runSnapshotsList(opts *SnapshotsOptions, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var snapshots []store.Snapshot
	err := withStore(opts.Database, func(st *store.Store) error {
		var err error
		snapshots, err = st.List(cmd.Context())
		return err
	})
	if err != nil {
		return formatter.Fail("list snapshots", err)
	}

	if opts.Format == "json" {
		return formatter.Success(snapshots)
	}

	w := cmd.OutOrStdout()
	if len(snapshots) == 0 {
		fmt.Fprintln(w, "No snapshots stored.")
		return nil
	}
	for _, s := range snapshots {
		fmt.Fprintf(w, "%-20s SRU %-4s %s  %s\n", s.Name, s.SRUVersion, shortHash(s.ContentHash), s.ServerURL)
	}
	return nil
}

func runSnapshotsImport(opts *SnapshotsOptions, name, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	cfg, err := config.LoadFile(path)
	if err != nil {
		return formatter.Fail("import snapshot", err)
	}

	var snapshot store.Snapshot
	err = withStore(opts.Database, func(st *store.Store) error {
		if _, err := st.Save(cmd.Context(), name, cfg); err != nil {
			return err
		}
		var err error
		snapshot, err = st.Get(cmd.Context(), name)
		return err
	})
	if err != nil {
		return formatter.Fail("import snapshot", err)
	}

	if opts.Format == "json" {
		return formatter.Success(snapshot)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as %q (%s)\n", path, name, snapshot.ID)
	return nil
}

func runSnapshotsExport(opts *SnapshotsOptions, name, path string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	var cfg *config.Configuration
	err := withStore(opts.Database, func(st *store.Store) error {
		var err error
		cfg, err = st.Load(cmd.Context(), name)
		return err
	})
	if err != nil {
		return formatter.Fail("export snapshot", err)
	}
	if err := cfg.SaveFile(path); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "export snapshot", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"name": name, "path": path})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", name, path)
	return nil
}

func runSnapshotsDelete(opts *SnapshotsOptions, name string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	err := withStore(opts.Database, func(st *store.Store) error {
		return st.Delete(cmd.Context(), name)
	})
	if err != nil {
		return formatter.Fail("delete snapshot", err)
	}

	if opts.Format == "json" {
		return formatter.Success(map[string]string{"deleted": name})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q\n", name)
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
