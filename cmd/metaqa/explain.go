// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain FILE",
	Short: "Show how each field of a record is classified and validated",
	Long: `Explain flattens a JSON record and prints, per field, its validation
result, the single owner chosen by keyword classification, and every
extractor type and category whose keywords match the path.`,
	Args: cobra.ExactArgs(1),
	RunE: runExplain,
}

func runExplain(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}
	record, err := readRecord(args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}

	fields, err := engine.Explain(record)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("format")
	return writeOutput(cmd.OutOrStdout(), fields, format)
}

func init() {
	explainCmd.Flags().String("format", "json", "output format: json or yaml")
	rootCmd.AddCommand(explainCmd)
}
