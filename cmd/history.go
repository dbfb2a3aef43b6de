/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/valpere/obratno/internal/store"
)

var historyDB string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded improvement sessions",
	Long: `Inspect the session history database.

Every improvement run records its full iteration trace; the history commands
list recorded sessions, show a single session's trace, print aggregate
statistics, and clear the database.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(historyDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer s.Close()

		entries, err := s.ListSessions(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No sessions recorded")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tSOURCE\tSCORE\tITER\tOUTCOME\tUSED\tCREATED")
		for _, e := range entries {
			score := "-"
			if e.BestScored {
				score = fmt.Sprintf("%.2f", e.BestScore)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%d\t%s\n",
				e.ID, truncate(e.SourceText, 40), score, e.Iterations, e.Outcome,
				e.UsageCount, e.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the full iteration trace of one session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(historyDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer s.Close()

		attempts, err := s.GetAttempts(context.Background(), args[0])
		if err != nil {
			return fmt.Errorf("failed to load attempts: %w", err)
		}
		if len(attempts) == 0 {
			return fmt.Errorf("no session with id %s", args[0])
		}

		for _, att := range attempts {
			fmt.Printf("--- Iteration %d ---\n", att.Iteration)
			fmt.Printf("Russian: %s\n", att.RussianText)
			fmt.Printf("Back-translated: %s\n", att.BackTranslated)
			if att.Scored {
				fmt.Printf("Similarity score: %.2f\n", att.Score)
				if att.Suggestions != "" {
					fmt.Printf("Suggestions: %s\n", att.Suggestions)
				}
			} else {
				fmt.Printf("Similarity score: unavailable\n")
			}
			fmt.Println()
		}
		return nil
	},
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregate session statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(historyDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer s.Close()

		stats, err := s.Stats(context.Background())
		if err != nil {
			return fmt.Errorf("failed to compute stats: %w", err)
		}

		fmt.Printf("Total sessions:    %d\n", stats.TotalSessions)
		fmt.Printf("Total attempts:    %d\n", stats.TotalAttempts)
		fmt.Printf("Early stopped:     %d\n", stats.EarlyStopped)
		fmt.Printf("Scored sessions:   %d\n", stats.ScoredSessions)
		if stats.ScoredSessions > 0 {
			fmt.Printf("Avg best score:    %.2f\n", stats.AvgBestScore)
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.New(historyDB)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer s.Close()

		n, err := s.ClearHistory(context.Background())
		if err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Printf("Deleted %d session(s)\n", n)
		return nil
	},
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyStatsCmd)
	historyCmd.AddCommand(historyClearCmd)

	historyCmd.PersistentFlags().StringVar(&historyDB, "db", "./data/obratno.db", "Database path for session history")
}
