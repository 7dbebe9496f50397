package main

// ExportFile is the top-level structure of a Day One JSON export file.
type ExportFile struct {
	Entries []Entry `json:"entries"`
}

// Entry represents a single journal entry from a Day One export
type Entry struct {
	CreationDate string     `json:"creationDate"`
	Text         string     `json:"text"`
	Photos       []PhotoRef `json:"photos"`
}

// PhotoRef references a photo attached to an entry. The backing file is
// named <md5>.<type> in the photo directory.
type PhotoRef struct {
	MD5  string `json:"md5"`
	Type string `json:"type"`
}

// PhotoFilenames returns the filenames of all photo references carrying
// both an md5 and a type.
func (e Entry) PhotoFilenames() []string {
	names := make([]string, 0, len(e.Photos))
	for _, p := range e.Photos {
		if p.MD5 == "" || p.Type == "" {
			continue
		}
		names = append(names, p.MD5+"."+p.Type)
	}
	return names
}

// ProcessingStatus represents the outcome status of migrating an entry
type ProcessingStatus string

const (
	StatusCreated ProcessingStatus = "created"
	StatusSkipped ProcessingStatus = "skipped"
	StatusFailed  ProcessingStatus = "failed"
)

// ProcessingResult tracks the outcome of migrating each entry
type ProcessingResult struct {
	Date   string
	Status ProcessingStatus
	Error  error
}
