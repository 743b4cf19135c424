// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "jevents",
	Short: "translate PMU event JSON files into perf event strings",
	Long: `jevents reads JSON descriptions of hardware performance-monitoring
events and translates each into a perf kernel-syntax event string.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits nonzero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
