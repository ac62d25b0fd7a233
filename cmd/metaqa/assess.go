// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metaqa/internal/assess"
	"github.com/pdiddy/metaqa/internal/history"
	"github.com/pdiddy/metaqa/internal/report"
	"github.com/pdiddy/metaqa/pkg/types"
)

var assessCmd = &cobra.Command{
	Use:   "assess FILE",
	Short: "Assess one metadata record",
	Long: `Assess reads a JSON metadata record and prints its quality report.

The content type selects the expected categories unless --categories names
them explicitly. With --save the report is stored in the local history;
with --compare-last the output also carries a comparison against the last
stored report for the same source.`,
	Args: cobra.ExactArgs(1),
	RunE: runAssess,
}

// assessOutput is printed when --compare-last is set.
type assessOutput struct {
	Report     *types.Report     `json:"report" yaml:"report"`
	Comparison *types.Comparison `json:"comparison" yaml:"comparison"`
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}
	if req.Record, err = readRecord(args[0], cmd.InOrStdin()); err != nil {
		return err
	}

	rep, err := engine.Assess(req)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")
	compareLast, _ := cmd.Flags().GetBool("compare-last")
	if !save && !compareLast {
		return writeOutput(cmd.OutOrStdout(), rep, format)
	}

	source, err := sourceKey(cmd, args[0])
	if err != nil {
		return err
	}
	store, err := history.NewStore(cfg.History.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	out := assessOutput{Report: rep}
	if compareLast {
		prev, err := store.Latest(cmd.Context(), source)
		switch {
		case errors.Is(err, history.ErrNotFound):
			slog.Info("no previous report to compare", "source", source)
		case err != nil:
			return err
		default:
			c := report.Compare(prev.Report, rep)
			out.Comparison = &c
		}
	}
	if save {
		e, err := store.Save(cmd.Context(), source, rep)
		if err != nil {
			return err
		}
		slog.Info("report saved", "source", source, "id", e.ID)
	}

	if compareLast {
		return writeOutput(cmd.OutOrStdout(), out, format)
	}
	return writeOutput(cmd.OutOrStdout(), rep, format)
}

// requestFromFlags builds an assessment request without its record.
func requestFromFlags(cmd *cobra.Command) (assess.Request, error) {
	contentType, _ := cmd.Flags().GetString("content-type")
	fileSize, _ := cmd.Flags().GetInt64("file-size")
	extractionTime, _ := cmd.Flags().GetFloat64("extraction-time")
	strict, _ := cmd.Flags().GetBool("strict")
	categories, _ := cmd.Flags().GetStringSlice("categories")

	if fileSize < 0 {
		return assess.Request{}, fmt.Errorf("--file-size must not be negative")
	}
	if extractionTime < 0 {
		return assess.Request{}, fmt.Errorf("--extraction-time must not be negative")
	}

	return assess.Request{
		ContentType:      strings.TrimSpace(contentType),
		Categories:       categories,
		FileSize:         fileSize,
		ExtractionTimeMS: extractionTime,
		Strict:           strict,
	}, nil
}

// sourceKey names a record in the history: --source when given,
// otherwise the record's absolute path.
func sourceKey(cmd *cobra.Command, path string) (string, error) {
	if s, _ := cmd.Flags().GetString("source"); s != "" {
		return s, nil
	}
	if path == "-" {
		return "", fmt.Errorf("--source is required when reading the record from stdin")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// addRequestFlags registers the flags shared by assess and batch.
func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("content-type", "", "declared content type of the source file, e.g. image/jpeg")
	cmd.Flags().Int64("file-size", 0, "source file size in bytes")
	cmd.Flags().Float64("extraction-time", 0, "upstream extraction time in milliseconds")
	cmd.Flags().Bool("strict", false, "record strict mode on the report")
	cmd.Flags().StringSlice("categories", nil, "expected categories, overriding the content type mapping")
	cmd.MarkFlagRequired("content-type")
}

func init() {
	addRequestFlags(assessCmd)
	assessCmd.Flags().String("format", "json", "output format: json or yaml")
	assessCmd.Flags().Bool("save", false, "store the report in the local history")
	assessCmd.Flags().Bool("compare-last", false, "compare against the last stored report for this source")
	assessCmd.Flags().String("source", "", "history key for the record (default: absolute file path)")

	rootCmd.AddCommand(assessCmd)
}
