package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strings"
)

// WriteCSV writes one row per entry to outputPath with a Date,Text,Photos
// header. Dates and text pass through verbatim; photo filenames are joined
// with ", ". When there are no entries, no file is written.
func WriteCSV(entries []Entry, outputPath string) error {
	if len(entries) == 0 {
		log.Printf("No entries found.")
		return nil
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", outputPath, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Text", "Photos"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, entry := range entries {
		row := []string{
			entry.CreationDate,
			entry.Text,
			strings.Join(entry.PhotoFilenames(), ", "),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}

	log.Printf("Successfully converted %d entries to %s", len(entries), outputPath)
	return nil
}
