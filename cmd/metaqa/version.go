package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metaqa/internal/indicators"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of metaqa and its built-in indicator tables",
	Run: func(cmd *cobra.Command, args []string) {
		tables := "unknown"
		if t, err := indicators.Default(); err == nil {
			tables = t.Version()
		}
		fmt.Fprintf(cmd.OutOrStdout(), "metaqa %s (indicator tables %s)\n", version, tables)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
