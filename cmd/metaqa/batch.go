// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/metaqa/internal/assess"
	"github.com/pdiddy/metaqa/internal/metrics"
	"github.com/pdiddy/metaqa/internal/report"
	"github.com/pdiddy/metaqa/pkg/types"
)

var batchCmd = &cobra.Command{
	Use:   "batch FILE...",
	Short: "Assess many metadata records concurrently",
	Long: `Batch assesses every file with the same request flags and prints one
JSON summary line per file, in argument order. A file that cannot be read
or assessed gets a line with an error and does not stop the others.

With --metrics-out the run's metrics are written in the Prometheus
textfile collector format.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

// batchLine is one line of batch output.
type batchLine struct {
	File    string         `json:"file"`
	Summary *types.Summary `json:"summary,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
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

	workers, _ := cmd.Flags().GetInt("workers")
	if workers <= 0 {
		workers = cfg.Batch.Workers
	}

	for _, f := range args {
		if f == "-" {
			return fmt.Errorf("batch does not read stdin; pass file paths")
		}
	}

	rec := metrics.NewRecorder()
	lines, err := assessFiles(cmd.Context(), engine, req, args, workers, rec)
	if err != nil {
		return err
	}

	failed, err := writeBatchLines(cmd.OutOrStdout(), lines)
	if err != nil {
		return err
	}

	if out, _ := cmd.Flags().GetString("metrics-out"); out != "" {
		if err := rec.WriteTextfile(out); err != nil {
			return err
		}
		slog.Info("metrics written", "path", out)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(lines))
	}
	return nil
}

// assessFiles runs at most workers assessments at once. Per-file errors
// are reported in the returned lines; only cancellation aborts the run.
func assessFiles(ctx context.Context, engine *assess.Engine, req assess.Request, files []string, workers int, rec *metrics.Recorder) ([]batchLine, error) {
	lines := make([]batchLine, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			lines[i] = batchLine{File: file}

			r := req
			record, err := readRecord(file, nil)
			if err == nil {
				r.Record = record
				var rep *types.Report
				if rep, err = engine.Assess(r); err == nil {
					s := report.Summarize(rep)
					lines[i].Summary = &s
					rec.Observe(rep, time.Since(start))
					return nil
				}
			}

			lines[i].Error = err.Error()
			rec.ObserveError()
			slog.Warn("assessment failed", "file", file, "error", err)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func writeBatchLines(w io.Writer, lines []batchLine) (int, error) {
	enc := json.NewEncoder(w)
	failed := 0
	for _, l := range lines {
		if l.Error != "" {
			failed++
		}
		if err := enc.Encode(l); err != nil {
			return failed, err
		}
	}
	return failed, nil
}

func init() {
	addRequestFlags(batchCmd)
	batchCmd.Flags().Int("workers", 0, "maximum concurrent assessments (default: batch.workers, 4)")
	batchCmd.Flags().String("metrics-out", "", "write Prometheus textfile metrics to this path")

	rootCmd.AddCommand(batchCmd)
}
