package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// ParseStats counts export files by outcome
type ParseStats struct {
	FilesRead    int
	FilesSkipped int
}

// ReadExportDir reads all JSON files in dir and collects their entries.
// Files that cannot be read or parsed, and files without an "entries" key,
// are logged and skipped; they never abort the run.
func ReadExportDir(dir string) ([]Entry, ParseStats, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, ParseStats{}, fmt.Errorf("listing JSON files in %s: %w", dir, err)
	}

	log.Printf("Found %d JSON files in %s", len(files), dir)

	var entries []Entry
	var stats ParseStats
	for _, path := range files {
		fileEntries, err := readExportFile(path)
		if err != nil {
			log.Printf("Error processing %s: %v", path, err)
			stats.FilesSkipped++
			continue
		}
		if fileEntries == nil {
			log.Printf("Skipping %s: no 'entries' key found", path)
			stats.FilesSkipped++
			continue
		}

		entries = append(entries, fileEntries...)
		stats.FilesRead++
	}

	return entries, stats, nil
}

// readExportFile decodes one export file. A nil slice with a nil error
// means the file parsed but had no top-level "entries" key.
func readExportFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	rawEntries, ok := raw["entries"]
	if !ok {
		return nil, nil
	}

	var entries []Entry
	if err := json.Unmarshal(rawEntries, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}
