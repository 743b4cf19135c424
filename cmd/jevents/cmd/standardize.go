// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// standardizeCmd represents the standardize command
var standardizeCmd = &cobra.Command{
	Use:   "standardize file",
	Short: "rewrite a comment-bearing event file as standard JSON",
	Long: `Rewrite an event file that carries comments or trailing commas
into standard JSON on stdout, for consumers that require it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(std)
		return err
	},
}

func init() {
	rootCmd.AddCommand(standardizeCmd)
}
