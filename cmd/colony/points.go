package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
)

func newPointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "points <snapshot.json>",
		Short: "Show the empire point breakdown of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			snap, err := loader.LoadSnapshot(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			score := engine.Score(snap.State, e.catalog, e.proc.Rules())
			prog := engine.Recalculate(snap.State, e.catalog, e.steps, e.proc.Rules())

			if !quiet {
				printScore(out, score)
			}
			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ %.0f empire points\n", prog.EmpirePoints)
			if prog.TutorialClaimable {
				color.New(color.FgYellow).Fprintf(out, "★ tutorial step %s is claimable\n", snap.State.CurrentTutorialID)
			} else if snap.State.CurrentTutorialID != "" {
				fmt.Fprintf(out, "  tutorial step %s not yet complete\n", snap.State.CurrentTutorialID)
			}
			return nil
		},
	}
}
