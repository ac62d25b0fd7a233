// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/metaqa/internal/flatten"
	"github.com/pdiddy/metaqa/pkg/types"
)

// readRecord decodes the JSON record in path, keeping key order. A path
// of "-" reads stdin.
func readRecord(path string, stdin io.Reader) (any, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening record: %w", err)
		}
		defer f.Close()
		r = f
	}
	record, err := flatten.DecodeJSON(r)
	if err != nil {
		return nil, fmt.Errorf("decoding record %s: %w", path, err)
	}
	return record, nil
}

// readReport loads a report previously written by "assess --format json".
func readReport(path string) (*types.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var r types.Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parsing report %s: %w", path, err)
	}
	return &r, nil
}

// writeOutput encodes v to w as indented JSON or YAML.
func writeOutput(w io.Writer, v any, format string) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q: use json or yaml", format)
	}
}
