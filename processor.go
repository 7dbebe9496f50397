package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	// Notion rejects page creations whose children exceed this many
	// blocks. Entries over the limit fail outright; there is no
	// continuation logic to split them across multiple appends.
	maxBlocksPerPage = 100

	// Lines longer than this are truncated with an ellipsis marker.
	maxParagraphLen = 2000
)

// displayZone is the timezone used for page titles and date properties.
var displayZone = time.FixedZone("UTC+9", 9*60*60)

// sortedEntry pairs an entry with its parsed creation timestamp.
type sortedEntry struct {
	when  time.Time
	entry Entry
}

// EntryProcessor drives the remote pipeline: order entries
// chronologically, upload photos, build content blocks and create one
// Notion page per entry.
type EntryProcessor struct {
	client     *NotionClient
	databaseID string
	photoDir   string
	delay      time.Duration
}

// NewEntryProcessor creates a processor writing into the given database
func NewEntryProcessor(client *NotionClient, databaseID, photoDir string, delay time.Duration) *EntryProcessor {
	return &EntryProcessor{
		client:     client,
		databaseID: databaseID,
		photoDir:   photoDir,
		delay:      delay,
	}
}

// ProcessEntries migrates all entries in chronological order. A failed
// entry never aborts the batch; each outcome is reported in the results.
func (p *EntryProcessor) ProcessEntries(entries []Entry) []ProcessingResult {
	ordered, skipped := sortByCreationDate(entries)

	results := make([]ProcessingResult, 0, len(entries))
	results = append(results, skipped...)

	log.Printf("Migrating %d entries...", len(ordered))

	for i, se := range ordered {
		date := se.when.In(displayZone).Format("2006-01-02")
		log.Printf("[%d/%d] Processing entry: %s", i+1, len(ordered), date)

		result := p.processEntry(se.entry, date)
		results = append(results, result)

		if result.Status == StatusCreated {
			log.Printf("✓ Created: %s", date)
		} else {
			log.Printf("✗ Failed %s: %v", date, result.Error)
		}

		// Pause between page creations to respect API rate limits
		if i < len(ordered)-1 {
			time.Sleep(p.delay)
		}
	}

	return results
}

// processEntry uploads an entry's photos, builds its blocks and creates
// the page.
func (p *EntryProcessor) processEntry(entry Entry, date string) ProcessingResult {
	children := p.buildBlocks(entry)

	if len(children) > maxBlocksPerPage {
		log.Printf("Warning: entry %s has %d blocks, over the per-request limit of %d; creation will fail", date, len(children), maxBlocksPerPage)
	}

	if err := p.client.CreatePage(p.databaseID, date, children); err != nil {
		return ProcessingResult{
			Date:   date,
			Status: StatusFailed,
			Error:  fmt.Errorf("creating page: %w", err),
		}
	}

	return ProcessingResult{Date: date, Status: StatusCreated}
}

// buildBlocks assembles the page children: one image block per uploaded
// photo, then one paragraph block per non-empty line of text.
func (p *EntryProcessor) buildBlocks(entry Entry) []Block {
	var blocks []Block

	for _, name := range entry.PhotoFilenames() {
		path := filepath.Join(p.photoDir, name)
		if _, err := os.Stat(path); err != nil {
			debugLog("photo %s not found locally, skipping", name)
			continue
		}

		uploadID, err := p.client.UploadFile(path)
		if err != nil {
			log.Printf("Error uploading %s: %v", name, err)
			blocks = append(blocks, ParagraphBlock(fmt.Sprintf("[photo upload failed: %s]", name)))
			continue
		}
		blocks = append(blocks, ImageBlock(uploadID))
	}

	for _, line := range strings.Split(entry.Text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, ParagraphBlock(truncateLine(line)))
	}

	return blocks
}

// sortByCreationDate parses each entry's creation timestamp and orders
// the parseable ones ascending. Entries without a valid timestamp are
// excluded from the batch and reported as skipped.
func sortByCreationDate(entries []Entry) ([]sortedEntry, []ProcessingResult) {
	ordered := make([]sortedEntry, 0, len(entries))
	var skipped []ProcessingResult

	for _, entry := range entries {
		when, err := time.Parse(time.RFC3339, entry.CreationDate)
		if err != nil {
			log.Printf("Skipping entry with unparseable creationDate %q: %v", entry.CreationDate, err)
			skipped = append(skipped, ProcessingResult{
				Date:   entry.CreationDate,
				Status: StatusSkipped,
				Error:  err,
			})
			continue
		}
		ordered = append(ordered, sortedEntry{when: when.UTC(), entry: entry})
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].when.Before(ordered[j].when)
	})

	return ordered, skipped
}

// truncateLine caps a line at maxParagraphLen characters, marker included.
func truncateLine(line string) string {
	runes := []rune(line)
	if len(runes) <= maxParagraphLen {
		return line
	}
	return string(runes[:maxParagraphLen-3]) + "..."
}

// Summarize tallies results into created, skipped and failed counts.
func Summarize(results []ProcessingResult) (created, skipped, failed int) {
	for _, r := range results {
		switch r.Status {
		case StatusCreated:
			created++
		case StatusSkipped:
			skipped++
		case StatusFailed:
			failed++
		}
	}
	return created, skipped, failed
}
