// Package selector assembles the bounded context blob handed to the LLM:
// the most relevant classified chunks and criteria excerpts when enough are
// found, otherwise the largest whole files.
package selector

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/mfenderov/tenderlens/internal/chunker"
	"github.com/mfenderov/tenderlens/pkg/models"
)

const (
	// chunkSeparator joins individual passages and file texts.
	chunkSeparator = "\n\n---\n\n"
	// sectionSeparator divides the chunk preamble from whole-file text in
	// the fallback path.
	sectionSeparator = "\n\n==========\n\n"
)

// Config carries the selection limits. Zero values are replaced by the
// service-level defaults before Combine is called.
type Config struct {
	// MaxFilesToProcess is the document count above which the fallback
	// keeps only the largest files.
	MaxFilesToProcess int
	// TopFilesToUse bounds both the relevant-chunk preamble and the number
	// of whole files kept in the fallback.
	TopFilesToUse int
	// ContextSize is the character window passed to criteria extraction.
	ContextSize int
}

// Combine produces the text forwarded to the LLM for a tender's documents.
// It prefers classified chunks and criteria excerpts; when fewer than
// TopFilesToUse unique passages are found it falls back to whole files,
// largest first. Output is deterministic for identical document content.
// No character cap is applied; the LLM call is the last line of defense
// against oversized input.
func Combine(files map[string]string, cfg Config) string {
	if len(files) == 0 {
		return ""
	}

	result := chunker.ChunkDocuments(files, cfg.ContextSize)
	uniqueChunks := relevantPassages(result)

	if len(uniqueChunks) >= cfg.TopFilesToUse {
		slog.Debug("using relevant chunks", "unique_chunks", len(uniqueChunks))
		// Twice as many chunks as we would whole files: chunks are far
		// smaller than documents.
		limit := cfg.TopFilesToUse * 2
		if limit > len(uniqueChunks) {
			limit = len(uniqueChunks)
		}
		return joinTexts(uniqueChunks[:limit])
	}

	slog.Debug("too few relevant chunks, falling back to whole files",
		"unique_chunks", len(uniqueChunks), "files", len(files))

	if len(files) > cfg.MaxFilesToProcess {
		combined := joinTexts(largestTexts(files, cfg.TopFilesToUse))
		if len(uniqueChunks) > 0 {
			preamble := uniqueChunks
			if len(preamble) > cfg.TopFilesToUse {
				preamble = preamble[:cfg.TopFilesToUse]
			}
			combined = joinTexts(preamble) + sectionSeparator + combined
		}
		return combined
	}

	texts := make([]string, 0, len(files))
	for _, name := range models.SortedFileNames(files) {
		texts = append(texts, files[name])
	}
	combined := joinTexts(texts)
	if len(uniqueChunks) > 0 {
		combined = joinTexts(uniqueChunks) + sectionSeparator + combined
	}
	return combined
}

// relevantPassages flattens the chunking result into an ordered, exactly
// deduplicated list of passage texts: category chunks first (fixed category
// order, "other" excluded), then criteria sections in fixed criteria order.
func relevantPassages(result *chunker.Result) []string {
	var passages []string
	for _, cat := range chunker.CategoryOrder {
		for _, chunk := range result.CategorizedChunks[cat] {
			passages = append(passages, chunk.Text)
		}
	}
	for _, ctype := range chunker.CriteriaTypeOrder() {
		for _, section := range result.SpecificCriteria[ctype] {
			passages = append(passages, section.Text)
		}
	}

	unique := make([]string, 0, len(passages))
	seen := make(map[string]bool, len(passages))
	for _, p := range passages {
		if seen[p] {
			continue
		}
		seen[p] = true
		unique = append(unique, p)
	}
	return unique
}

// largestTexts returns the texts of the n largest files, size descending,
// ties broken by filename for determinism.
func largestTexts(files map[string]string, n int) []string {
	names := models.SortedFileNames(files)
	sort.SliceStable(names, func(i, j int) bool {
		return len(files[names[i]]) > len(files[names[j]])
	})

	if n > len(names) {
		n = len(names)
	}
	texts := make([]string, n)
	for i := 0; i < n; i++ {
		texts[i] = files[names[i]]
	}
	return texts
}

func joinTexts(texts []string) string {
	return strings.Join(texts, chunkSeparator)
}
