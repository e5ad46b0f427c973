package cmd

import (
	"errors"
	"fmt"

	"github.com/abhisek/mcqgenie/internal/store"
	"github.com/spf13/cobra"
)

var expireCmd = &cobra.Command{
	Use:   "expire <test_id>",
	Short: "Mark an in-progress test as expired so it can no longer be submitted",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, err := openBackend(cmd.Context(), cmd, backendOpts{})
		if err != nil {
			return err
		}
		defer b.Close()

		id := args[0]
		err = b.tests().Expire(cmd.Context(), id)
		switch {
		case err == nil:
			fmt.Printf("Test %s expired.\n", id)
			return nil
		case errors.Is(err, store.ErrNotFound):
			return fmt.Errorf("test %s not found", id)
		case errors.Is(err, store.ErrAlreadySubmitted):
			return fmt.Errorf("test %s was already submitted", id)
		case errors.Is(err, store.ErrExpired):
			fmt.Printf("Test %s was already expired.\n", id)
			return nil
		}
		return err
	},
}
