package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mcqgenie/internal/quiz"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate a test and print it without answers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		asJSON, _ := cmd.Flags().GetBool("json")

		b, err := openBackend(cmd.Context(), cmd, backendOpts{LLM: true})
		if err != nil {
			return err
		}
		defer b.Close()

		if count == 0 {
			count = b.cfg.DefaultMCQCount
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 3*time.Minute)
		defer cancel()

		test, err := b.tests().Generate(ctx, quiz.GenerationRequest{
			Topic:      strings.Join(args, " "),
			Count:      count,
			Difficulty: quiz.Difficulty(strings.ToLower(difficulty)),
		})
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(test)
		}

		fmt.Printf("Test %s  %q  (%d questions, %d min)\n\n",
			test.TestID, test.Topic, test.TotalQuestions, test.TimeLimitMinutes)
		for i, q := range test.Questions {
			fmt.Printf("%d. %s\n", i+1, q.Text)
			for _, o := range q.Options {
				fmt.Printf("   %s) %s\n", o.ID, o.Text)
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	generateCmd.Flags().IntP("count", "c", 0, "Number of questions (default MCQGENIE_DEFAULT_MCQ_COUNT)")
	generateCmd.Flags().StringP("difficulty", "d", string(quiz.DifficultyMedium), "Difficulty: easy, medium or hard")
	generateCmd.Flags().Bool("json", false, "Print the test as JSON")
}
