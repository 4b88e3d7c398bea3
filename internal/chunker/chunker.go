package chunker

import (
	"regexp"
	"strings"
	"time"

	"github.com/mfenderov/tenderlens/pkg/models"
)

const (
	// minDocumentLength excludes near-empty documents from chunking and
	// criteria extraction.
	minDocumentLength = 100
	// minParagraphLength excludes headings and stray lines from chunking.
	minParagraphLength = 50
)

// paragraphSplit matches one or more blank lines between paragraphs.
var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Chunk is a classified paragraph with its neighbouring paragraphs attached
// as context. Immutable once produced.
type Chunk struct {
	Text       string     `json:"text"`
	Context    string     `json:"context"`
	Source     string     `json:"source"`
	Categories []Category `json:"categories"`
}

// Metadata summarizes one chunking run.
type Metadata struct {
	TotalFiles            int       `json:"total_files"`
	TotalTextLength       int       `json:"total_text_length"`
	TotalChunks           int       `json:"total_chunks"`
	TotalCriteriaSections int       `json:"total_criteria_sections"`
	CategoriesFound       []string  `json:"categories_found"`
	CriteriaTypesFound    []string  `json:"criteria_types_found"`
	ProcessedAt           time.Time `json:"processed_at"`
	Status                string    `json:"status"`
}

// Result holds everything one chunking run produced. Request-scoped, never
// persisted.
type Result struct {
	CategorizedChunks map[Category][]Chunk         `json:"categorized_chunks"`
	SpecificCriteria  map[string][]CriteriaSection `json:"specific_criteria"`
	Metadata          Metadata                     `json:"metadata"`
}

// Stats reports the per-category and per-criteria distribution of a run.
type Stats struct {
	ChunksPerCategory   map[Category]int `json:"chunks_per_category"`
	SectionsPerCriteria map[string]int   `json:"sections_per_criteria"`
}

// Stats computes the distribution of chunks and criteria sections.
func (r *Result) Stats() Stats {
	s := Stats{
		ChunksPerCategory:   make(map[Category]int, len(r.CategorizedChunks)),
		SectionsPerCriteria: make(map[string]int, len(r.SpecificCriteria)),
	}
	for cat, chunks := range r.CategorizedChunks {
		s.ChunksPerCategory[cat] = len(chunks)
	}
	for ctype, sections := range r.SpecificCriteria {
		s.SectionsPerCriteria[ctype] = len(sections)
	}
	return s
}

// ChunkByCategory splits every sufficiently long document into paragraphs,
// classifies each paragraph on its own (not its context), and files the
// resulting chunk into every matched category, or into CategoryOther when
// nothing matched. Documents are visited in sorted filename order so the
// per-category chunk order is deterministic. Categories with no chunks are
// omitted from the result.
func ChunkByCategory(files map[string]string) map[Category][]Chunk {
	chunksByCategory := make(map[Category][]Chunk)

	for _, filename := range models.SortedFileNames(files) {
		content := files[filename]
		if len(strings.TrimSpace(content)) < minDocumentLength {
			continue
		}

		paragraphs := splitParagraphs(content)
		for i, paragraph := range paragraphs {
			if len(paragraph) < minParagraphLength {
				continue
			}

			var prev, next string
			if i > 0 {
				prev = paragraphs[i-1]
			}
			if i < len(paragraphs)-1 {
				next = paragraphs[i+1]
			}

			chunk := Chunk{
				Text:       paragraph,
				Context:    joinContext(prev, paragraph, next),
				Source:     filename,
				Categories: Classify(paragraph),
			}

			if len(chunk.Categories) == 0 {
				chunksByCategory[CategoryOther] = append(chunksByCategory[CategoryOther], chunk)
				continue
			}
			for _, cat := range chunk.Categories {
				chunksByCategory[cat] = append(chunksByCategory[cat], chunk)
			}
		}
	}

	return chunksByCategory
}

// ChunkDocuments runs paragraph chunking and criteria extraction over a
// tender's documents and assembles the combined result with metadata.
func ChunkDocuments(files map[string]string, contextSize int) *Result {
	if len(files) == 0 {
		return &Result{
			CategorizedChunks: map[Category][]Chunk{},
			SpecificCriteria:  map[string][]CriteriaSection{},
			Metadata: Metadata{
				ProcessedAt: time.Now(),
				Status:      "no_files_provided",
			},
		}
	}

	totalLength := 0
	for _, text := range files {
		totalLength += len(text)
	}

	categorized := ChunkByCategory(files)
	criteria := ExtractCriteria(files, contextSize)

	totalChunks := 0
	categoriesFound := make([]string, 0, len(categorized))
	for _, cat := range CategoryOrder {
		if chunks, ok := categorized[cat]; ok {
			totalChunks += len(chunks)
			categoriesFound = append(categoriesFound, string(cat))
		}
	}
	if chunks, ok := categorized[CategoryOther]; ok {
		totalChunks += len(chunks)
		categoriesFound = append(categoriesFound, string(CategoryOther))
	}

	totalSections := 0
	criteriaFound := make([]string, 0, len(criteria))
	for _, ctype := range CriteriaTypeOrder() {
		if sections, ok := criteria[ctype]; ok {
			totalSections += len(sections)
			criteriaFound = append(criteriaFound, ctype)
		}
	}

	return &Result{
		CategorizedChunks: categorized,
		SpecificCriteria:  criteria,
		Metadata: Metadata{
			TotalFiles:            len(files),
			TotalTextLength:       totalLength,
			TotalChunks:           totalChunks,
			TotalCriteriaSections: totalSections,
			CategoriesFound:       categoriesFound,
			CriteriaTypesFound:    criteriaFound,
			ProcessedAt:           time.Now(),
			Status:                "completed",
		},
	}
}

// splitParagraphs splits on blank-line boundaries, trimming each paragraph
// and dropping empty ones.
func splitParagraphs(content string) []string {
	raw := paragraphSplit.Split(content, -1)
	paragraphs := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// joinContext joins the present neighbours and the paragraph itself with
// blank lines, skipping absent neighbours.
func joinContext(prev, paragraph, next string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{prev, paragraph, next} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}
