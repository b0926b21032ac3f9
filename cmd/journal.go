package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/artcollab/internal/core"
	"github.com/zjrosen/artcollab/internal/infrastructure/sqlite"
	"github.com/zjrosen/artcollab/internal/presentation"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect the command journal",
}

var (
	journalAfter int64
	journalLimit int
	journalJSON  bool
	journalPath  string
)

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journaled commands in order",
	Long: `List journaled commands in sequence order.

Examples:
  artcollab journal list
  artcollab journal list --after 100 --limit 20
  artcollab journal list --json | jq '.[].command_type'`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withJournal(func(j *sqlite.Journal) error {
			return listJournal(cmd.Context(), j, cmd.OutOrStdout(), journalAfter, journalLimit, journalJSON)
		})
	},
}

var journalVerifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Replay the journal into a scratch registry",
	Long: `Replay every journaled command into an empty in-memory registry and
report the resulting counts. Exits non-zero and names the first failing
entry when the journal no longer replays cleanly.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withJournal(func(j *sqlite.Journal) error {
			return verifyJournal(cmd.Context(), j, cmd.OutOrStdout(), journalJSON)
		})
	},
}

func init() {
	journalCmd.PersistentFlags().StringVar(&journalPath, "path", "", "journal database (overrides journal.path)")
	journalCmd.PersistentFlags().BoolVar(&journalJSON, "json", false, "print JSON")
	journalListCmd.Flags().Int64Var(&journalAfter, "after", 0, "only entries after this sequence number")
	journalListCmd.Flags().IntVar(&journalLimit, "limit", 100, "maximum entries to print")

	journalCmd.AddCommand(journalListCmd, journalVerifyCmd)
	rootCmd.AddCommand(journalCmd)
}

func withJournal(fn func(*sqlite.Journal) error) error {
	cleanup, err := setupLogging(false)
	if err != nil {
		return err
	}
	defer cleanup()

	path := journalPath
	if path == "" {
		path = cfg.Journal.Path
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("journal %s: %w", path, err)
	}

	db, err := sqlite.NewDB(path)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	return fn(db.Journal())
}

func listJournal(ctx context.Context, j *sqlite.Journal, w io.Writer, after int64, limit int, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	entries, err := j.List(ctx, after, limit)
	if err != nil {
		return fmt.Errorf("listing journal: %w", err)
	}

	f := presentation.NewFormatter(w)
	dtos := presentation.FromJournalEntries(entries)
	if asJSON {
		return f.FormatJSON(dtos)
	}
	return f.FormatEntries(dtos)
}

func verifyJournal(ctx context.Context, j *sqlite.Journal, w io.Writer, asJSON bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	total, err := j.Count(ctx)
	if err != nil {
		return fmt.Errorf("counting journal: %w", err)
	}

	scratch, err := core.NewInfrastructure(core.InfrastructureConfig{})
	if err != nil {
		return err
	}
	if err := scratch.Start(); err != nil {
		return err
	}
	defer func() { _ = scratch.Shutdown(context.Background()) }()

	replayed, replayErr := scratch.Replay(ctx, j)
	report := presentation.NewVerifyReport(total, replayed, scratch.Engine.Snapshot(), replayErr)

	f := presentation.NewFormatter(w)
	if asJSON {
		err = f.FormatJSON(report)
	} else {
		err = f.FormatVerifyReport(report)
	}
	if err != nil {
		return err
	}
	if replayErr != nil {
		return fmt.Errorf("journal does not replay cleanly: %w", replayErr)
	}
	return nil
}
