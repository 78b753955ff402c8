package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"readmegen/internal/database"
	"readmegen/internal/models"
	"readmegen/internal/repositories"
)

var flagSessionLimit int

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recent generation sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.Init(database.Config{Path: cfg.DatabasePath})
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}

		repo := repositories.NewGenerationSessionRepository(db)
		sessions, err := repo.ListRecent(flagSessionLimit)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No sessions recorded.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "WHEN\tREPOSITORY\tSTATUS\tFILES\tDURATION")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
				s.CreatedAt.Format(time.DateTime),
				s.RepoURL,
				s.Status,
				s.FilesAnalyzed, s.FilesSelected,
				(time.Duration(s.DurationMs) * time.Millisecond).String())
		}
		if err := w.Flush(); err != nil {
			return err
		}

		var counts []string
		for _, status := range []string{models.SessionStatusOK, models.SessionStatusDegraded, models.SessionStatusFallback} {
			n, countErr := repo.CountByStatus(status)
			if countErr != nil {
				return countErr
			}
			counts = append(counts, fmt.Sprintf("%d %s", n, status))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nTotal:", strings.Join(counts, ", "))
		return nil
	},
}

func init() {
	sessionsCmd.Flags().IntVar(&flagSessionLimit, "limit", 20, "number of sessions to show")
	rootCmd.AddCommand(sessionsCmd)
}
