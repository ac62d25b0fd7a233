// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/metaqa/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history [SOURCE]",
	Short: "List reports stored by assess --save",
	Long: `History lists stored reports, newest first. With SOURCE only the
reports for that source key are listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := history.NewStore(cfg.History.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := history.ListOptions{}
	if len(args) == 1 {
		opts.Source = args[0]
	}
	opts.Limit, _ = cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	return store.Export(cmd.Context(), cmd.OutOrStdout(), format, opts)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries")
	historyCmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(historyCmd)
}
