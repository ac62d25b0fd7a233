// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/metaqa/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare BEFORE.json AFTER.json",
	Short: "Compare two saved reports",
	Long: `Compare reads two JSON reports written by assess and prints the score
deltas, the level change, the field count change, and whether both were
computed from the same flattened record.`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	before, err := readReport(args[0])
	if err != nil {
		return err
	}
	after, err := readReport(args[1])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	return writeOutput(cmd.OutOrStdout(), report.Compare(before, after), format)
}

func init() {
	compareCmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(compareCmd)
}
