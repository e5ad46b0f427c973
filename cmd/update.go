package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/abhisek/mcqgenie/internal/selfupdate"
	"github.com/spf13/cobra"
)

const updateTimeout = 2 * time.Minute

var (
	updateCheckOnly bool
	updateTo        string
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Replace this binary with the latest release",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&updateCheckOnly, "check", false, "only report whether a newer release exists")
	updateCmd.Flags().StringVar(&updateTo, "version", "", "install this release tag instead of the latest, e.g. v1.2.0")
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), updateTimeout)
	defer cancel()

	out := cmd.OutOrStdout()
	checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))

	if updateCheckOnly {
		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			fmt.Fprintf(out, "mcqgenie %s is up to date (latest release %s).\n", version, res.LatestVersion)
			return nil
		}
		fmt.Fprintf(out, "mcqgenie %s is available (you have %s).\n%s\n", res.LatestVersion, version, res.ReleaseURL)
		return nil
	}

	err := checker.Update(ctx, &selfupdate.UpdateInput{CurrentVersion: version, TargetVersion: updateTo},
		func(p selfupdate.UpdateProgress) { fmt.Fprintln(out, p.Message) })
	switch {
	case err == nil:
		return nil
	case errors.Is(err, selfupdate.ErrDevBuild):
		fmt.Fprintln(out, "This is a development build; install a release build to use update.")
		return nil
	case errors.Is(err, selfupdate.ErrAlreadyLatest):
		fmt.Fprintf(out, "Already on the latest release (%s).\n", version)
		return nil
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("%w\n\nThe binary's directory is not writable; try: sudo mcqgenie update", err)
	}
	return err
}
