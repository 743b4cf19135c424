// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package cmd

import (
	"fmt"

	"github.com/creachadair/jevents"
	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "list the events of an event file",
	Long: `List the events of the given event file, one per line, as
name, perf event string, and description joined by the separator.
With no file, the default event file for the host CPU is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		}
		tr := jevents.NewTranslator()
		tr.AllowComments(comments)
		out := cmd.OutOrStdout()
		return tr.TranslateFile(path, func(name, event, desc string) error {
			_, err := fmt.Fprintf(out, "%s%s%s%s%s\n", name, sep, event, sep, desc)
			return err
		})
	},
}

var sep string
var comments bool

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&sep, "sep", "s", "\t", "output field separator")
	listCmd.Flags().BoolVarP(&comments, "comments", "c", false,
		"accept comments in the event file")
}
