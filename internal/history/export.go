// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// Export writes the entries selected by opts to w as YAML or indented
// JSON.
func (s *Store) Export(ctx context.Context, w io.Writer, format string, opts ListOptions) error {
	entries, err := s.List(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	var data []byte
	switch format {
	case "yaml":
		data, err = yaml.Marshal(entries)
	case "json", "":
		data, err = json.MarshalIndent(entries, "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", format, err)
	}

	_, err = w.Write(data)
	return err
}
