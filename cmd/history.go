package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/intervu-dev/intervu/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past interview sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		s, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		records, err := s.Sessions().List(context.Background(), limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(records) == 0 {
			fmt.Println("No interviews yet.")
			return nil
		}

		fmt.Printf("%-19s  %-24s  %-12s  %-8s  %s\n", "Started", "Role", "Company", "Status", "Report")
		fmt.Println(strings.Repeat("─", 100))
		for _, rec := range records {
			status := "reached " + rec.Stage
			if rec.Complete {
				status = "complete"
			}
			fmt.Printf("%-19s  %-24s  %-12s  %-8s  %s\n",
				rec.StartedAt.Local().Format("2006-01-02 15:04"),
				truncate(rec.Role, 24),
				truncate(rec.Company, 12),
				status,
				rec.ReportURL,
			)
		}
		return nil
	},
}

// truncate caps s at max runes, never splitting a multibyte character.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")
}
