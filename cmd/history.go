package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent tests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		b, err := openBackend(cmd.Context(), cmd, backendOpts{})
		if err != nil {
			return err
		}
		defer b.Close()

		tests, err := b.tests().History(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}
		if len(tests) == 0 {
			fmt.Println("No tests found.")
			return nil
		}

		fmt.Printf("%-36s  %-16s  %-30s  %-6s  %-11s  %4s  %s\n",
			"ID", "Created", "Topic", "Level", "Status", "Qs", "Score")
		fmt.Println(strings.Repeat("─", 120))
		for _, t := range tests {
			score := "-"
			if t.ScorePercentage != nil {
				score = fmt.Sprintf("%.2f%%", *t.ScorePercentage)
			}
			fmt.Printf("%-36s  %-16s  %-30s  %-6s  %-11s  %4d  %s\n",
				t.TestID,
				t.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(t.Topic, 30),
				t.Difficulty,
				t.Status,
				t.TotalQuestions,
				score,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of tests to show (0 = all)")
}
