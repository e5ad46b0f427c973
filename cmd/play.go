package cmd

import (
	"github.com/abhisek/mcqgenie/internal/app"
	"github.com/spf13/cobra"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take generated tests in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func runPlay(cmd *cobra.Command) error {
	b, err := openBackend(cmd.Context(), cmd, backendOpts{LLM: true, Events: true})
	if err != nil {
		return err
	}
	defer b.Close()

	return app.Run(b.tests(), b.cfg.DefaultMCQCount)
}
