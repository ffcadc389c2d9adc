package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/okian/ufcradar/internal/adapters/archive"
	"github.com/okian/ufcradar/internal/adapters/repository"
	"github.com/okian/ufcradar/internal/report"
)

func (c *cli) eventsCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Event archive commands",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to SQLite archive (default from config)")

	db := func() string {
		if dbPath != "" {
			return dbPath
		}
		return c.cfg.ArchiveDB
	}

	cmd.AddCommand(c.eventsImportCmd(db))
	cmd.AddCommand(c.eventsListCmd(db))
	return cmd
}

func (c *cli) eventsImportCmd(db func() string) *cobra.Command {
	var (
		file  string
		apply bool
		limit int
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Diff the events export against the archive and optionally apply it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if file == "" {
				file = c.cfg.Path(c.cfg.EventsFile)
			}
			rows, err := repository.ReadEventRows(file, limit)
			if err != nil {
				return fmt.Errorf("read events: %w", err)
			}

			store, err := openArchive(db())
			if err != nil {
				return err
			}
			defer store.Close()

			rep, err := store.Import(cmd.Context(), rows, apply)
			if err != nil {
				return fmt.Errorf("import events: %w", err)
			}

			out := cmd.OutOrStdout()
			report.PrintImportSummary(out, rep)
			report.PrintImportTable(out, rep)
			if !apply && rep.Created+rep.Updated > 0 {
				fmt.Fprintln(out, "Dry run. Re-run with --apply to write these changes.")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "events CSV (default from config)")
	cmd.Flags().BoolVar(&apply, "apply", false, "write changes to the archive")
	cmd.Flags().IntVar(&limit, "limit", 0, "only read the first N rows (0 = all)")
	return cmd
}

func (c *cli) eventsListCmd(db func() string) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived events, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openArchive(db())
			if err != nil {
				return err
			}
			defer store.Close()

			events, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list events: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, "No events archived yet. Run 'radarctl events import --apply' to add some.")
				return nil
			}
			report.PrintEventTable(out, events)
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum events to list (0 = all)")
	return cmd
}

func openArchive(path string) (*archive.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return archive.Open(path)
}
