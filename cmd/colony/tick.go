package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/napolitain/colony-sim/internal/engine"
	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/server"
)

func newTickCmd() *cobra.Command {
	var (
		now    int64
		write  bool
		remote string
	)

	cmd := &cobra.Command{
		Use:   "tick <snapshot.json>",
		Short: "Run one tick over a snapshot",
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

			at := evalTime(cmd, snap.Now, now)

			var result *engine.TickResult
			if remote != "" {
				result, err = remoteTick(cmd.Context(), remote, snap, at)
			} else {
				result, err = e.proc.Process(snap.State, at, snap.ActiveWar)
			}
			if err != nil {
				return fmt.Errorf("tick failed: %w", err)
			}

			snap.State.Apply(result.Updates)
			prog := engine.Recalculate(snap.State, e.catalog, e.steps, e.proc.Rules())
			snap.State.EmpirePoints = prog.EmpirePoints
			snap.State.TutorialClaimable = prog.TutorialClaimable
			snap.Now = at

			out := cmd.OutOrStdout()
			if !quiet {
				printLogs(out, result.Logs)
				printState(out, snap.State)
			}
			color.New(color.FgGreen, color.Bold).Fprintf(out, "✓ %d log entries, %.0f empire points\n", len(result.Logs), prog.EmpirePoints)
			if prog.TutorialClaimable {
				color.New(color.FgYellow).Fprintf(out, "★ tutorial step %s is claimable\n", snap.State.CurrentTutorialID)
			}

			if write {
				if err := loader.SaveSnapshot(args[0], snap); err != nil {
					return err
				}
				if !quiet {
					fmt.Fprintf(out, "💾 Saved %s\n", args[0])
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&now, "now", 0, "Tick time in epoch milliseconds (default: snapshot time, then wall clock)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "Write the merged state back to the snapshot")
	cmd.Flags().StringVar(&remote, "remote", "", "Tick through a colony gRPC server at this address")
	return cmd
}

// evalTime picks the evaluation time: the --now flag, then the snapshot
// time, then the wall clock
func evalTime(cmd *cobra.Command, snapNow, flagNow int64) int64 {
	at := snapNow
	if cmd.Flags().Changed("now") {
		at = flagNow
	}
	if at == 0 {
		at = time.Now().UnixMilli()
	}
	return at
}

func remoteTick(ctx context.Context, addr string, snap *loader.Snapshot, now int64) (*engine.TickResult, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return server.NewClient(conn).TickState(ctx, snap.State, now, snap.ActiveWar)
}
