package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/napolitain/colony-sim/internal/clock"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/session"
)

func newRunCmd() *cobra.Command {
	var duration time.Duration

	cmd := &cobra.Command{
		Use:   "run <snapshot.json>",
		Short: "Tick a snapshot on the wall clock and save it when done",
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

			s := session.New(snap.State, e.proc, e.catalog, e.steps, clock.RealClock{},
				session.WithLogger(e.logger),
				session.WithMaxLogEntries(e.cfg.MaxLogEntries),
				session.WithWar(snap.ActiveWar),
			)

			if err := s.CatchUp(cmd.Context()); err != nil {
				return fmt.Errorf("catch up: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), duration)
			defer cancel()
			if err := s.Run(ctx, e.cfg.TickInterval); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			state := s.Snapshot()
			logs := s.Logs()
			if !quiet {
				printLogs(out, logs)
				printState(out, state)
			}
			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ %d log entries, %.0f empire points\n", len(logs), state.EmpirePoints)

			return loader.SaveSnapshot(args[0], &loader.Snapshot{
				Now:       time.Now().UnixMilli(),
				ActiveWar: snap.ActiveWar,
				State:     state,
			})
		},
	}

	cmd.Flags().DurationVar(&duration, "for", 10*time.Second, "How long to keep ticking")
	return cmd
}
