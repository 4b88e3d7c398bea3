package models

import (
	"encoding/json"
	"log/slog"
	"sort"
	"strings"
	"time"
)

// Tender represents one tender (procurement bid) package with the text
// extracted from its documents by the upstream extraction pipeline.
type Tender struct {
	TenderID  string    `json:"tender_id"`
	Title     string    `json:"title,omitempty"`
	FileTexts FileTexts `json:"file_texts"`
	IndexedAt time.Time `json:"indexed_at,omitempty"`
}

// FileTexts holds the extracted document texts of a tender. Upstream stores
// either a per-file mapping (filename -> text) or, for older records, a single
// pre-joined string. Exactly one of Files and Combined is set; any other JSON
// shape degrades to empty.
type FileTexts struct {
	Files    map[string]string
	Combined string
}

// UnmarshalJSON accepts both stored shapes. A value that is neither an object
// nor a string is logged and treated as empty rather than failing the decode.
func (ft *FileTexts) UnmarshalJSON(data []byte) error {
	ft.Files = nil
	ft.Combined = ""

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == "" {
		return nil
	}

	var files map[string]string
	if err := json.Unmarshal(data, &files); err == nil {
		ft.Files = files
		return nil
	}

	var combined string
	if err := json.Unmarshal(data, &combined); err == nil {
		ft.Combined = combined
		return nil
	}

	slog.Warn("file_texts has unexpected shape, treating as empty")
	return nil
}

// MarshalJSON writes back whichever shape is populated.
func (ft FileTexts) MarshalJSON() ([]byte, error) {
	if ft.Files != nil {
		return json.Marshal(ft.Files)
	}
	return json.Marshal(ft.Combined)
}

// IsEmpty reports whether no extracted text is present at all.
func (ft FileTexts) IsEmpty() bool {
	return len(ft.Files) == 0 && ft.Combined == ""
}

// FileCount returns the number of per-file texts (0 for the pre-joined shape).
func (ft FileTexts) FileCount() int {
	return len(ft.Files)
}

// TotalLength returns the total number of extracted characters.
func (ft FileTexts) TotalLength() int {
	if ft.Files == nil {
		return len(ft.Combined)
	}
	total := 0
	for _, text := range ft.Files {
		total += len(text)
	}
	return total
}

// SortedFileNames returns the filenames in lexicographic order. Go maps have
// no iteration order, so every pass over a tender's documents goes through
// this to keep chunking and fallback selection deterministic per request.
func SortedFileNames(files map[string]string) []string {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
