package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	quiet      bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colony",
		Short: "Colony tick engine",
		Long: `Advances a colony snapshot through time: completes due construction,
recruitment and research, resolves returning missions and scores the result.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&dataDir, "data", "d", "", "Path to data directory (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")

	rootCmd.AddCommand(newTickCmd(), newPointsCmd(), newRunCmd(), newForecastCmd())
	return rootCmd
}
