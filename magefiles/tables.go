//go:build mage

package main

import (
	"fmt"

	"github.com/pdiddy/metaqa/internal/indicators"
)

// Tables validates an indicator tables file and prints a summary of it.
// An empty path checks the built-in tables.
func Tables(path string) error {
	var (
		t   *indicators.Tables
		err error
	)
	if path == "" {
		t, err = indicators.Default()
	} else {
		t, err = indicators.Load(path)
	}
	if err != nil {
		return err
	}

	fmt.Printf("indicator tables %s: %d categories, %d extractor types\n",
		t.Version(), len(t.Categories()), len(t.Extractors()))
	for _, c := range t.Categories() {
		fmt.Printf("  %-18s %2d indicators, critical %v\n", c.Name, len(c.Indicators), c.Critical)
	}
	return nil
}
