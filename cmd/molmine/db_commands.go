package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"molmine/internal/config"
	"molmine/internal/fileutil"
	"molmine/internal/store"
)

func newDBCommand(ctx *commandContext) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database utilities",
	}

	dbCmd.AddCommand(newDBHealthCommand(ctx))
	dbCmd.AddCommand(newDBBackupCommand(ctx))

	return dbCmd
}

func newDBHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(st *store.Store) error {
				health, err := st.CheckHealth(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOut {
					return writeJSON(cmd, health)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Database:    %s\n", health.DBPath)
				fmt.Fprintf(out, "Exists:      %s\n", yesNo(health.DatabaseExists))
				fmt.Fprintf(out, "Readable:    %s\n", yesNo(health.DatabaseReadable))
				fmt.Fprintf(out, "Integrity:   %s\n", yesNo(health.IntegrityCheck))
				if len(health.MissingTables) > 0 {
					fmt.Fprintf(out, "Missing:     %s\n", strings.Join(health.MissingTables, ", "))
				}
				fmt.Fprintf(out, "Projects:    %d\n", health.Stats.Projects)
				fmt.Fprintf(out, "PDFs:        %d\n", health.Stats.Pdfs)
				fmt.Fprintf(out, "Compounds:   %d\n", health.Stats.Compounds)
				fmt.Fprintf(out, "Data keys:   %d\n", health.Stats.ProjectData)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit health as JSON")
	return cmd
}

func newDBBackupCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <destination>",
		Short: "Copy the database file to a backup location",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dest, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve destination: %w", err)
			}
			// Open and close the store first so the WAL is checkpointed
			// before the file copy.
			var dbPath string
			if err := ctx.withStore(func(st *store.Store) error {
				dbPath = st.Path()
				return nil
			}); err != nil {
				return err
			}
			if info, err := os.Stat(dest); err == nil && info.IsDir() {
				dest = filepath.Join(dest, filepath.Base(dbPath))
			}
			if err := fileutil.CopyFile(dbPath, dest); err != nil {
				return fmt.Errorf("backup database: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Backed up %s to %s\n", dbPath, dest)
			return nil
		},
	}
}
