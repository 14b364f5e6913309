package main

import (
	"fmt"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/colony-sim/internal/loader"
	"github.com/napolitain/colony-sim/internal/schedule"
)

func newForecastCmd() *cobra.Command {
	var (
		limit int
		now   int64
	)

	cmd := &cobra.Command{
		Use:   "forecast <snapshot.json>",
		Short: "List pending completions in the order ticks will apply them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loader.LoadSnapshot(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			at := evalTime(cmd, snap.Now, now)
			due := schedule.Due(snap.State, at)
			upcoming := schedule.Upcoming(snap.State, at, limit)
			if len(due)+len(upcoming) == 0 {
				fmt.Fprintln(out, "📭 Nothing pending")
				return nil
			}

			table := tablewriter.NewTable(out,
				tablewriter.WithHeader([]string{"#", "When", "Kind", "ID", "Subject", "Count"}),
			)
			i := 0
			for _, e := range due {
				i++
				_ = table.Append([]string{fmt.Sprint(i), "due now", e.Type.String(), e.ID, e.Subject, fmt.Sprint(e.Count)})
			}
			for _, e := range upcoming {
				i++
				in := time.Duration(e.Time-at) * time.Millisecond
				_ = table.Append([]string{fmt.Sprint(i), "in " + in.String(), e.Type.String(), e.ID, e.Subject, fmt.Sprint(e.Count)})
			}
			return table.Render()
		},
	}

	cmd.Flags().Int64Var(&now, "now", 0, "Forecast time in epoch milliseconds (default: snapshot time, then wall clock)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of future events (0 for all)")
	return cmd
}
