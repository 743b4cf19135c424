// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"fmt"

	"github.com/creachadair/jevents"
	"github.com/spf13/cobra"
)

// pathCmd represents the path command
var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "print the default event file path for this host",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := jevents.DefaultPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
}
